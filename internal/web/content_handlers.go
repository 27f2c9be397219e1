// internal/web/content_handlers.go
//
// Public blog endpoints.
//
// Workflow
//   •  Listings load the published pool once per request and derive views
//      (tag filter, tag enumeration, related ranking) through the engine.
//   •  GET /api/posts/{slug} is the hot path: the assembled payload is
//      cached in the LRU keyed by slug and invalidated by admin mutations.
//   •  Search delegates to the Bleve index; the database is not touched.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/content"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/metrics"
)

// listItem is the card shape for listings: no body, but a reading-time
// label derived from it.
type listItem struct {
	*content.Item
	Body        string `json:"body,omitempty"` // shadows Item.Body; always zero, so cards never carry it
	ReadingTime string `json:"readingTime"`
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	pool, err := content.ListPublished(r.Context(), s.DB)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if tag := r.URL.Query().Get("tag"); tag != "" {
		pool = s.Engine.FilterByTag(pool, tag)
	}

	out := make([]listItem, len(pool))
	for i, it := range pool {
		out[i] = listItem{Item: it, ReadingTime: s.Engine.ReadingTime(it.Body).Label()}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"posts": out})
}

// postPayload is the full single-post response.
type postPayload struct {
	Post        *content.Item   `json:"post"`
	ReadingTime string          `json:"readingTime"`
	Related     []*content.Item `json:"related"`
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if cached, ok := s.Cache.Get(slug); ok {
		metrics.PostCacheHitsTotal.Inc()
		s.respondJSON(w, http.StatusOK, cached)
		return
	}

	payload, err := s.buildPostPayload(r, slug)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.Cache.Add(slug, payload)
	s.respondJSON(w, http.StatusOK, payload)
}

func (s *Server) getRelated(w http.ResponseWriter, r *http.Request) {
	payload, err := s.buildPostPayload(r, chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"related": payload.Related})
}

// buildPostPayload assembles the post view: body, reading time, and the
// related ranking over the published pool.  Unknown or unpublished slugs
// fail with not-found; the engine is never fed a tag-less stand-in.
func (s *Server) buildPostPayload(r *http.Request, slug string) (*postPayload, error) {
	it, err := content.GetBySlug(r.Context(), s.DB, slug)
	if err != nil {
		return nil, err
	}
	if !it.Published() {
		return nil, &apperr.NotFoundError{Key: slug}
	}

	pool, err := content.ListPublished(r.Context(), s.DB)
	if err != nil {
		return nil, err
	}

	related := s.Engine.RelatedDefault(it, pool)
	metrics.RelatedComputationsTotal.Inc()

	return &postPayload{
		Post:        it,
		ReadingTime: s.Engine.ReadingTime(it.Body).Label(),
		Related:     related,
	}, nil
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	pool, err := content.ListPublished(r.Context(), s.DB)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"tags": s.Engine.AllTags(pool)})
}

func (s *Server) searchPosts(w http.ResponseWriter, r *http.Request) {
	if s.Search == nil {
		http.Error(w, "search disabled", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": []apperr.FieldError{{Field: "q", Reason: "must not be empty"}},
		})
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	hits, err := s.Search.Query(q, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	metrics.SearchQueriesTotal.Inc()
	s.respondJSON(w, http.StatusOK, map[string]any{"results": hits})
}
