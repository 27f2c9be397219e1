// internal/web/contact_handlers.go
//
// Intake endpoints.
//
// Workflow
//   •  Decode JSON body → validate via contact.Validator → stamp request
//      enrichment → insert → enqueue email.  The validator owns every
//      defaulting rule; handlers add nothing but plumbing.
//   •  A duplicate email surfaces as 409 straight from the repository.
//   •  Mail enqueue failures are logged, not returned: the lead is already
//      persisted, and the queue stub is retry-friendly.
package web

import (
	"net/http"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/contact"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/metrics"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/requestinfo"
)

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var raw contact.ContactInput
	if !s.decodeJSON(w, r, &raw) {
		return
	}

	rec, err := s.Validator.ValidateContact(raw)
	if err != nil {
		metrics.IntakeValidationFailuresTotal.WithLabelValues("contact").Inc()
		s.respondError(w, r, err)
		return
	}

	rec.Meta = captureMeta(r)

	if err := contact.InsertContact(r.Context(), s.DB, rec); err != nil {
		if apperr.IsDuplicate(err) != nil {
			metrics.IntakeDuplicatesTotal.Inc()
		}
		s.respondError(w, r, err)
		return
	}
	metrics.ContactSubmissionsTotal.Inc()

	if err := s.Mailer.NotifyLead(r.Context(), rec); err != nil {
		s.Log.Errorw("notify lead", "token", rec.Token, "err", err)
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"token": rec.Token})
}

func (s *Server) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var raw contact.SignupInput
	if !s.decodeJSON(w, r, &raw) {
		return
	}

	sub, err := s.Validator.ValidateNewsletterSignup(raw)
	if err != nil {
		metrics.IntakeValidationFailuresTotal.WithLabelValues("newsletter").Inc()
		s.respondError(w, r, err)
		return
	}

	sub.Meta = captureMeta(r)

	if err := contact.InsertSignup(r.Context(), s.DB, sub); err != nil {
		if apperr.IsDuplicate(err) != nil {
			metrics.IntakeDuplicatesTotal.Inc()
		}
		s.respondError(w, r, err)
		return
	}
	metrics.NewsletterSignupsTotal.Inc()

	if err := s.Mailer.WelcomeSignup(r.Context(), sub); err != nil {
		s.Log.Errorw("welcome signup", "token", sub.Token, "err", err)
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"token": sub.Token})
}

// captureMeta lifts the requestinfo enrichment onto the record.  Absent
// middleware (tests) yields empty metadata, never an error.
func captureMeta(r *http.Request) contact.RequestMeta {
	info := requestinfo.FromContext(r.Context())
	if info == nil {
		return contact.RequestMeta{}
	}
	return contact.RequestMeta{
		Device:     info.UA.Device,
		CountryISO: info.Geo.CountryISO,
		Referrer:   info.Referrer,
	}
}
