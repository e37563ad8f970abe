package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Upload   *UploadHandler
}

// NewRouter assembles the public REST surface.
func NewRouter(h Handlers, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "Kani Hampers API is running"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", h.Catalog.GetConfig)
		r.Get("/hampers", h.Catalog.ListHampers)

		r.Route("/rakhis", func(r chi.Router) {
			r.Get("/", h.Catalog.ListItems(repository.CollectionRakhis))
			r.Post("/", h.Catalog.AddItem(repository.CollectionRakhis))
			r.Put("/{id}", h.Catalog.UpdateItem(repository.CollectionRakhis))
			r.Delete("/{id}", h.Catalog.DeleteItem(repository.CollectionRakhis))
		})

		r.Route("/addons", func(r chi.Router) {
			r.Get("/", h.Catalog.ListItems(repository.CollectionAddons))
			r.Post("/", h.Catalog.AddItem(repository.CollectionAddons))
			r.Put("/{id}", h.Catalog.UpdateItem(repository.CollectionAddons))
			r.Delete("/{id}", h.Catalog.DeleteItem(repository.CollectionAddons))
		})

		r.Route("/cart/{sessionID}", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/hamper", h.Cart.SelectHamper)
			r.Post("/photos", h.Cart.UploadPhotos)
			r.Delete("/photos/{index}", h.Cart.RemovePhoto)
			r.Put("/message", h.Cart.SetMessage)
			r.Post("/lines", h.Cart.AddLine)
			r.Delete("/lines/{kind}/{itemID}", h.Cart.RemoveLine)
			r.Post("/advance", h.Cart.Advance)
			r.Post("/back", h.Cart.Back)
		})

		r.Post("/upload", h.Upload.Upload)

		r.Post("/checkout/{sessionID}", h.Checkout.Submit)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.ListOrders)
			r.Post("/", h.Orders.CreateOrder)
			r.Get("/{id}", h.Orders.GetOrder)
			r.Patch("/{id}/status", h.Orders.UpdateStatus)
			r.Delete("/{id}", h.Orders.DeleteOrder)
		})
	})

	return r
}
