package web

import "net/http"

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// NewDefaultMux builds the mux used by both the device and the simulator.
// Dev mode adds permissive CORS for a locally served front end.
func NewDefaultMux(cfg ServerConfig, deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/state", http.StatusFound)
	})

	deps = deps.withDefaults()
	var middleware []Middleware
	middleware = append(middleware, WithRequestLog(deps.Logger))
	if cfg.DevMode {
		middleware = append(middleware, WithDevCORS)
	}
	return Chain(mux, middleware...)
}
