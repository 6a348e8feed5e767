// Package httpx holds HTTP helpers shared by the relay's auxiliary endpoints.
package httpx

import (
	"log"
	"net/http"
	"time"
)

// CommonMiddleware sets CORS headers for the read-only API, answers
// preflight requests, and logs each request.
func CommonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("[HTTP] %s %s (%v)", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	})
}
