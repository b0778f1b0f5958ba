package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fieldbook/internal/http/calendar"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/client"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/job"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/payment"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/stock"
)

func New(
	clientsV1 *client.Handler,
	jobsV1 *job.Handler,
	eventsV1 *event.Handler,
	paymentsV1 *payment.Handler,
	stockV1 *stock.Handler,
	calendarV1 *calendar.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		json := middleware.AllowContentType("application/json")

		r.Route("/clients", func(r chi.Router) {
			r.Use(json)
			clientsV1.Routes(r)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Use(json)
			jobsV1.Routes(r)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(json)
			eventsV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(json)
			paymentsV1.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(json)
			paymentsV1.ExpenseRoutes(r)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Use(json)
			paymentsV1.MaterialRoutes(r)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(json)
			stockV1.Routes(r)
		})

		r.Route("/calendar", calendarV1.Routes)

		r.Route("/import", importV1.Routes)
	})

	return router
}
