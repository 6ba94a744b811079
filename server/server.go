package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jghoshh/virtuo-push/engine"
)

// recoveryMiddleware is a middleware function that recovers from panics and provides a generic error message to the client.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %s\n", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// New assembles the operational HTTP server: a health probe and a manual tick
// trigger for deployments where an external cron fires the evaluation pass
// instead of the built-in scheduler loop.
func New(addr string, eng *engine.Engine) *http.Server {
	// Initialize a new router
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	r.HandleFunc("/tick", func(w http.ResponseWriter, req *http.Request) {
		if err := eng.Tick(req.Context()); err != nil {
			http.Error(w, "tick failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	// Apply the logging middleware
	loggingRouter := handlers.LoggingHandler(os.Stdout, recoveryMiddleware(r))

	return &http.Server{
		Handler:      loggingRouter,
		Addr:         addr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
}
