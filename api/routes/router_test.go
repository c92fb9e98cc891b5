package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	buildsvc "github.com/buildbench/inven-backend/internal/builds"
	productsvc "github.com/buildbench/inven-backend/internal/products"
	"github.com/buildbench/inven-backend/internal/relations"
	toolsvc "github.com/buildbench/inven-backend/internal/tools"
	"github.com/buildbench/inven-backend/pkg/config"
	"github.com/buildbench/inven-backend/pkg/db"
	"github.com/buildbench/inven-backend/pkg/db/dbtest"
	"github.com/buildbench/inven-backend/pkg/logger"
	"github.com/buildbench/inven-backend/pkg/metrics"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn := dbtest.Open(t)
	client := db.NewFromGorm(conn)
	logg := logger.New(logger.Options{ServiceName: "inven-test", Level: zerolog.Disabled, Output: io.Discard})

	products, err := productsvc.NewService(productsvc.NewRepository(conn), client)
	require.NoError(t, err)
	tools, err := toolsvc.NewService(toolsvc.NewRepository(conn), client)
	require.NoError(t, err)
	builds, err := buildsvc.NewService(buildsvc.NewRepository(conn), client)
	require.NoError(t, err)
	rels, err := relations.NewService(relations.NewRepository(conn), client)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:    &config.Config{App: config.AppConfig{Env: "test"}},
		Logger:    logg,
		DBPinger:  client,
		Metrics:   metrics.NewRequestMetrics(prometheus.NewRegistry()),
		Products:  products,
		Tools:     tools,
		Builds:    builds,
		Relations: rels,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func dataField(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Error.Message
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":         "Hex Bolt",
		"vendor":       "Fastenal",
		"product_type": "part",
		"vendor_sku":   "fs-hb-10",
		"quantity":     25,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataField(t, rec)
	id := int64(created["product_id"].(float64))
	require.NotZero(t, id)

	// Duplicate sku conflicts.
	rec = doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":         "Other Bolt",
		"vendor":       "Other",
		"product_type": "part",
		"vendor_sku":   "fs-hb-10",
		"quantity":     1,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Vendor SKU already exists", errorMessage(t, rec))

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(25), dataField(t, rec)["quantity"])

	// Absolute set.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/products/%d", id), map[string]any{"quantity": 40})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(40), dataField(t, rec)["quantity"])

	// Delta then read.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/products/%d/quantity/increment/get?value=5", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(45), dataField(t, rec)["postUpdateQuantity"])

	// Read then delta.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/products/%d/quantity/get/decrement?value=3", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(45), dataField(t, rec)["preUpdateQuantity"])

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, float64(42), dataField(t, rec)["quantity"])

	// Decrement below zero is rejected by the store.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/products/%d/quantity/decrement/get?value=100", id), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown operation in the path.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/products/%d/quantity/double/get", id), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(42), dataField(t, rec)["quantity"])

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found", errorMessage(t, rec))
}

func TestToolLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/tools", map[string]any{
		"name":   "Palm Router",
		"vendor": "Makita",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataField(t, rec)
	id := int64(created["tool_id"].(float64))
	require.Equal(t, float64(1), created["owned"], "owned defaults to one")
	require.Equal(t, float64(0), created["avail"], "avail defaults to zero")

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/tools/%d", id), map[string]any{"owned": 4, "avail": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(4), dataField(t, rec)["owned"])

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/tools/%d/available/increment/get?value=2", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(4), dataField(t, rec)["postTotalAvail"])

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/tools/%d/owned/get/increment", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(4), dataField(t, rec)["preTotalOwned"])

	// owned is 5 and avail is 4: dropping owned by two would leave fewer
	// owned than available, which the store rejects.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/tools/%d/owned/decrement/get?value=2", id), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown counter segment.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/tools/%d/broken/increment/get", id), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuildAndRelationLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/builds", map[string]any{"name": "Planter Box", "sku": "pb-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	buildID := int64(dataField(t, rec)["build_id"].(float64))

	rec = doJSON(t, router, http.MethodPost, "/products", map[string]any{
		"name":         "Cedar Board",
		"vendor":       "Lumber Co",
		"product_type": "material",
		"vendor_sku":   "lc-cb-1",
		"quantity":     30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	productID := int64(dataField(t, rec)["product_id"].(float64))

	// Link the product.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/builds/%d/products", buildID), map[string]any{
		"product_id": productID,
		"quantity":   6,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	link := dataField(t, rec)
	require.Equal(t, float64(buildID), link["build_id"])
	product := link["product"].(map[string]any)
	require.Equal(t, float64(6), product["quantity_required"])

	// Deleting a linked product is blocked with 405.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "Product is still part of an active build", errorMessage(t, rec))

	// List and single fetch.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/builds/%d/products", buildID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := dataField(t, rec)
	require.Len(t, listed["products"].([]any), 1)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/builds/%d/products/%d", buildID, productID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Update link quantity; zero is rejected.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/builds/%d/products/%d", buildID, productID), map[string]any{"quantity": 9})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/builds/%d/products/%d", buildID, productID), map[string]any{"quantity": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Remove the link, then the product delete succeeds.
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/builds/%d/products/%d", buildID, productID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Build rename and delete.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/builds/%d", buildID), map[string]any{"name": "Raised Planter"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Raised Planter", dataField(t, rec)["name"])

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/builds/%d", buildID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/builds/%d", buildID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "inven-backend", dataField(t, rec)["service"])

	rec = doJSON(t, router, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-Inven-Env"))

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
