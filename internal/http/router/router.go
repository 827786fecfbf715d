// Package router assembles the HTTP route table.
package router

import (
	"log/slog"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/aanand-mishra/contacts-api/internal/http/handlers/contact"
	"github.com/aanand-mishra/contacts-api/internal/http/middleware"
	"github.com/aanand-mishra/contacts-api/internal/storage"
)

// New returns the application handler.
//
// Route table:
//
//	GET    /contacts          → list all contacts
//	GET    /contacts/export   → zip of vCards
//	GET    /contacts/{id}     → get one contact
//	POST   /contacts          → create a contact
//	PATCH  /contacts/{id}     → update a contact
//	DELETE /contacts/{id}     → delete a contact
//	GET    /metrics           → Prometheus metrics
//	GET    /liveness          → 200 while the process is up
//
// ServeMux prefers the most specific pattern, so /contacts/export is never
// mistaken for an id.
func New(store storage.Storage, exportDir string, log *slog.Logger, set *metrics.Set) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /contacts", contact.GetList(store))
	mux.HandleFunc("GET /contacts/export", contact.Export(store, exportDir))
	mux.HandleFunc("GET /contacts/{id}", contact.GetByID(store))
	mux.HandleFunc("POST /contacts", contact.New(store))
	mux.HandleFunc("PATCH /contacts/{id}", contact.Update(store))
	mux.HandleFunc("DELETE /contacts/{id}", contact.Delete(store))

	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		set.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	})
	mux.HandleFunc("GET /liveness", func(http.ResponseWriter, *http.Request) {})

	return middleware.Chain(mux,
		middleware.Logger(log),
		middleware.Metrics(set),
	)
}
