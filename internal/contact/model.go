// internal/contact/model.go
//
// Lead and newsletter-signup records.
//
// Context
// -------
// Record and Signup are the normalized shapes the validator produces and
// the repository persists.  Token is a UUID minted at insert time so the
// admin surface and outbound email can reference a lead without exposing
// the auto-increment id.  RequestMeta is best-effort enrichment captured
// from the submitting HTTP request; every field may be empty.
package contact

import "time"

// Record is one validated contact/lead submission.
type Record struct {
	ID        uint64 `db:"id" json:"id"`
	Token     string `db:"token" json:"token"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	Message   string `db:"message" json:"message"`

	// Optional enrichment supplied by the submitter.
	Company  string `db:"company" json:"company,omitempty"`
	Phone    string `db:"phone" json:"phone,omitempty"`
	Website  string `db:"website" json:"website,omitempty"`
	Twitter  string `db:"twitter" json:"twitter,omitempty"`
	LinkedIn string `db:"linkedin" json:"linkedin,omitempty"`
	GitHub   string `db:"github" json:"github,omitempty"`

	// Classification.  Group may be unset; Labels defaults to empty.
	// Both are mapped by hand in the repository (nullable column, CSV).
	Group  *Group  `db:"-" json:"group,omitempty"`
	Labels []Label `db:"-" json:"labels"`
	Source Source  `db:"source" json:"source"`

	// Consent.  Defaults to false and must never default to true.
	AllowMarketing bool `db:"allow_marketing" json:"allowMarketing"`

	Meta RequestMeta `db:"-" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Signup is one validated newsletter subscription.
type Signup struct {
	ID        uint64   `db:"id" json:"id"`
	Token     string   `db:"token" json:"token"`
	Email     string   `db:"email" json:"email"`
	FirstName string   `db:"first_name" json:"firstName,omitempty"`
	LastName  string   `db:"last_name" json:"lastName,omitempty"`
	Topics    []string `db:"-" json:"topics"`
	Source    Source   `db:"source" json:"source"`

	Meta RequestMeta `db:"-" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Socials returns the non-empty social handles keyed by platform.
func (r *Record) Socials() map[Platform]string {
	out := make(map[Platform]string, 3)
	if r.Twitter != "" {
		out[PlatformTwitter] = r.Twitter
	}
	if r.LinkedIn != "" {
		out[PlatformLinkedIn] = r.LinkedIn
	}
	if r.GitHub != "" {
		out[PlatformGitHub] = r.GitHub
	}
	return out
}

// RequestMeta is capture-time context about the submitting request.
type RequestMeta struct {
	Device     string `db:"device" json:"device,omitempty"`
	CountryISO string `db:"country_iso" json:"countryIso,omitempty"`
	Referrer   string `db:"referrer" json:"referrer,omitempty"`
}
