package controllers

import (
	"net/http"

	"github.com/buildbench/inven-backend/api/responses"
	"github.com/buildbench/inven-backend/pkg/config"
)

// ServiceBanner answers GET / with the service identity.
func ServiceBanner(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"service": "inven-backend",
			"env":     cfg.App.Env,
			"status":  "ok",
		})
	}
}
