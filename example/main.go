package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Morditux/cookiesession"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// glog registers its flags (-v, -logtostderr, ...) via the library import.
	flag.Parse()

	registry := prometheus.NewRegistry()

	mgr, err := cookiesession.NewManager(cookiesession.Config{
		Secret:          []byte("change-me-in-production"),
		MaxAge:          time.Hour,
		CookieName:      "my_app_session",
		MetricsRegistry: registry,
	})
	if err != nil {
		log.Fatalf("failed to create session manager: %v", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(mgr.Handler)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		session := cookiesession.FromRequest(req).Session()

		if session.GetString("visitor_id") == "" {
			session.Set("visitor_id", uuid.NewString())
		}

		count := session.GetInt("count") + 1
		session.Set("count", count)

		fmt.Fprintf(w, "Hello %s! You have visited this page %d times.\n",
			session.GetString("visitor_id"), count)
	})

	r.Get("/logout", func(w http.ResponseWriter, req *http.Request) {
		cookiesession.FromRequest(req).Clear()
		fmt.Fprint(w, "Logged out!\n")
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	fmt.Println("Server starting on :8080...")
	log.Fatal(http.ListenAndServe(":8080", r))
}
