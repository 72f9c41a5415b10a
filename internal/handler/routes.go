package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltgrid/chargefinder/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Every charger
// route requires a bearer token; auth routes, health, and metrics do not.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, chargers *service.ChargerService) {
	authHandler := NewAuthHandler(auth)
	chargerHandler := NewChargerHandler(chargers)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)

	mux.Handle("GET /chargers", RequireAuth(auth, http.HandlerFunc(chargerHandler.HandleList)))
	mux.Handle("POST /chargers", RequireAuth(auth, http.HandlerFunc(chargerHandler.HandleCreate)))
	mux.Handle("PUT /chargers/{id}", RequireAuth(auth, http.HandlerFunc(chargerHandler.HandleUpdate)))
	mux.Handle("DELETE /chargers/{id}", RequireAuth(auth, http.HandlerFunc(chargerHandler.HandleDelete)))
}
