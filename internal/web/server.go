// internal/web/server.go
//
// HTTP surface.
//
// Context
// -------
// One Server owns every collaborator the handlers need: the database pool,
// the relevance engine, the intake validator, the mailer, the Bleve index,
// and the post-response LRU.  Router() assembles the chi tree:
//
//	/api/...      public JSON endpoints (blog, contact, newsletter, search)
//	/admin/...    JWT-guarded content management and lead listing
//	/healthz      liveness probe
//
// /metrics is mounted by cmd/web next to this router so the Prometheus
// handler stays out of the middleware chain.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/cache"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/contact"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/content"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/mailer"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/middleware"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/requestinfo"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/search"
)

// Server bundles the handler dependencies.  All fields must be set except
// Search, which may be nil when the index is disabled (tests).
type Server struct {
	DB        *sqlx.DB
	Engine    *content.Engine
	Validator *contact.Validator
	Mailer    *mailer.Mailer
	Search    *search.Index
	Cache     *cache.LRU
	Log       *zap.SugaredLogger

	// AdminSecret signs /admin bearer tokens.
	AdminSecret string
}

// Router builds the chi tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", s.listPosts)
		r.Get("/posts/{slug}", s.getPost)
		r.Get("/posts/{slug}/related", s.getRelated)
		r.Get("/tags", s.listTags)
		r.Get("/search", s.searchPosts)
		r.Post("/contact", s.submitContact)
		r.Post("/newsletter", s.subscribeNewsletter)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminJWT(s.AdminSecret))
		r.Get("/posts", s.listAllPosts)
		r.Post("/posts", s.createPost)
		r.Put("/posts/{id}", s.updatePost)
		r.Post("/posts/{id}/publish", s.publishPost)
		r.Post("/posts/{id}/archive", s.archivePost)
		r.Get("/contacts", s.listContacts)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
