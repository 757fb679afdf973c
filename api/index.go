package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"net/http"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.Init(cfg, logger.ComponentAPI)

	handler := di.InitializeService()
	handler.Handler().ServeHTTP(w, r)
}
