package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/buildbench/inven-backend/api/controllers"
	"github.com/buildbench/inven-backend/api/middleware"
	buildsvc "github.com/buildbench/inven-backend/internal/builds"
	productsvc "github.com/buildbench/inven-backend/internal/products"
	"github.com/buildbench/inven-backend/internal/relations"
	toolsvc "github.com/buildbench/inven-backend/internal/tools"
	"github.com/buildbench/inven-backend/pkg/config"
	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/logger"
	"github.com/buildbench/inven-backend/pkg/metrics"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DBPinger  db.Pinger
	Metrics   *metrics.RequestMetrics
	Products  productsvc.Service
	Tools     toolsvc.Service
	Builds    buildsvc.Service
	Relations relations.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Get("/", controllers.ServiceBanner(deps.Config))
	r.Get("/health/live", controllers.HealthLive(deps.Config))
	r.Get("/health/ready", controllers.HealthReady(deps.Config, deps.DBPinger, deps.Logger))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Products, deps.Logger))
		r.Post("/", controllers.CreateProduct(deps.Products, deps.Logger))

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(deps.Products, deps.Logger))
			r.Put("/", controllers.SetProductQuantity(deps.Products, deps.Logger))
			r.Delete("/", controllers.DeleteProduct(deps.Products, deps.Logger))

			// Delta-then-read and read-then-delta quantity updates.
			r.Put("/quantity/{op}/get", controllers.AdjustProductQuantityPostImage(deps.Products, deps.Logger))
			r.Put("/quantity/get/{op}", controllers.AdjustProductQuantityPreImage(deps.Products, deps.Logger))
		})
	})

	r.Route("/tools", func(r chi.Router) {
		r.Get("/", controllers.ListTools(deps.Tools, deps.Logger))
		r.Post("/", controllers.CreateTool(deps.Tools, deps.Logger))

		r.Route("/{toolId}", func(r chi.Router) {
			r.Get("/", controllers.GetTool(deps.Tools, deps.Logger))
			r.Put("/", controllers.SetToolCounts(deps.Tools, deps.Logger))
			r.Delete("/", controllers.DeleteTool(deps.Tools, deps.Logger))

			r.Put("/{counter}/{op}/get", controllers.AdjustToolCounterPostImage(deps.Tools, deps.Logger))
			r.Put("/{counter}/get/{op}", controllers.AdjustToolCounterPreImage(deps.Tools, deps.Logger))
		})
	})

	r.Route("/builds", func(r chi.Router) {
		r.Get("/", controllers.ListBuilds(deps.Builds, deps.Logger))
		r.Post("/", controllers.CreateBuild(deps.Builds, deps.Logger))

		r.Route("/{buildId}", func(r chi.Router) {
			r.Get("/", controllers.GetBuild(deps.Builds, deps.Logger))
			r.Put("/", controllers.UpdateBuild(deps.Builds, deps.Logger))
			r.Delete("/", controllers.DeleteBuild(deps.Builds, deps.Logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListBuildProducts(deps.Relations, deps.Logger))
				r.Post("/", controllers.AddBuildProduct(deps.Relations, deps.Logger))
				r.Get("/{productId}", controllers.GetBuildProduct(deps.Relations, deps.Logger))
				r.Put("/{productId}", controllers.UpdateBuildProduct(deps.Relations, deps.Logger))
				r.Delete("/{productId}", controllers.DeleteBuildProduct(deps.Relations, deps.Logger))
			})

			r.Route("/tools", func(r chi.Router) {
				r.Get("/", controllers.ListBuildTools(deps.Relations, deps.Logger))
				r.Post("/", controllers.AddBuildTool(deps.Relations, deps.Logger))
				r.Get("/{toolId}", controllers.GetBuildTool(deps.Relations, deps.Logger))
				r.Put("/{toolId}", controllers.UpdateBuildTool(deps.Relations, deps.Logger))
				r.Delete("/{toolId}", controllers.DeleteBuildTool(deps.Relations, deps.Logger))
			})
		})
	})

	return r
}
