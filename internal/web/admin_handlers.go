// internal/web/admin_handlers.go
//
// JWT-guarded content management and lead listing.
//
// Workflow
//   •  Posts are created as drafts; the slug derives from the title unless
//      the caller supplies one.  Publish stamps published_at exactly once.
//   •  Every mutation purges the whole post LRU: cached payloads embed
//      related rankings over the published pool, so one change can stale
//      entries for unrelated slugs.  Publish/update/archive also keep the
//      Bleve index in step.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/contact"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/content"
)

// postInput is the admin payload for create/update.
type postInput struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Excerpt string   `json:"excerpt"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags"`
}

// validatePostInput applies the minimal rules the admin surface enforces.
func validatePostInput(in postInput) error {
	ve := &apperr.ValidationError{}
	if in.Title == "" {
		ve.Add("title", "must not be empty")
	}
	if in.Body == "" {
		ve.Add("body", "must not be empty")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// listAllPosts returns every post regardless of status, newest first.
func (s *Server) listAllPosts(w http.ResponseWriter, r *http.Request) {
	items, err := content.ListAll(r.Context(), s.DB)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"posts": items})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if !s.decodeJSON(w, r, &in) {
		return
	}
	if err := validatePostInput(in); err != nil {
		s.respondError(w, r, err)
		return
	}

	slug := in.Slug
	if slug == "" {
		slug = content.MakeSlug(in.Title)
	}

	it := &content.Item{
		Slug:    slug,
		Title:   in.Title,
		Excerpt: in.Excerpt,
		Body:    in.Body,
		Status:  content.StatusDraft,
		Tags:    in.Tags,
	}

	id, err := content.Insert(r.Context(), s.DB, it)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	it.ID = id

	s.respondJSON(w, http.StatusCreated, map[string]any{"id": id, "slug": slug})
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var in postInput
	if !s.decodeJSON(w, r, &in) {
		return
	}
	if err := validatePostInput(in); err != nil {
		s.respondError(w, r, err)
		return
	}

	it, err := content.GetByID(r.Context(), s.DB, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	it.Title = in.Title
	it.Excerpt = in.Excerpt
	it.Body = in.Body
	it.Tags = in.Tags

	if err := content.Update(r.Context(), s.DB, it); err != nil {
		s.respondError(w, r, err)
		return
	}

	// A published post may be embedded in other slugs' cached payloads
	// (related lists carry full items), so invalidate everything.
	s.Cache.Purge()
	if s.Search != nil && it.Published() {
		if err := s.Search.IndexItem(it); err != nil {
			s.Log.Errorw("reindex post", "slug", it.Slug, "err", err)
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"id": it.ID, "slug": it.Slug})
}

func (s *Server) publishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := content.Publish(r.Context(), s.DB, id, time.Now().UTC()); err != nil {
		s.respondError(w, r, err)
		return
	}

	it, err := content.GetByID(r.Context(), s.DB, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Publishing changes the pool every cached related list was ranked
	// against, so invalidate everything, not just this slug.
	s.Cache.Purge()
	if s.Search != nil {
		if err := s.Search.IndexItem(it); err != nil {
			s.Log.Errorw("index post", "slug", it.Slug, "err", err)
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"id": it.ID, "status": it.Status})
}

func (s *Server) archivePost(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	it, err := content.GetByID(r.Context(), s.DB, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := content.Archive(r.Context(), s.DB, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	// Same pool-change reasoning as publish: drop every cached payload.
	s.Cache.Purge()
	if s.Search != nil {
		if err := s.Search.Delete(it.Slug); err != nil {
			s.Log.Errorw("deindex post", "slug", it.Slug, "err", err)
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"id": id, "status": content.StatusArchived})
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	recs, err := contact.ListContacts(r.Context(), s.DB)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"contacts": recs})
}

// pathID parses the {id} URL parameter.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": []apperr.FieldError{{Field: "id", Reason: "must be a positive integer"}},
		})
		return 0, false
	}
	return id, true
}
