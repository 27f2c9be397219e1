// internal/content/model.go
//
// Blog post model and status lifecycle.
//
// Context
// -------
// Item mirrors one row in the `post` table plus its tag set from
// `post_tag`.  Visibility is controlled by a three-state lifecycle:
//
//	draft ──▶ published ──▶ archived
//	  └────────────────────────┘
//
// Publishing stamps PublishedAt exactly once; it is never cleared, even on
// archive.  Nothing leaves archived.  The transition table is intentionally
// one-directional.
package content

import "time"

// Status is the closed set of lifecycle states.  Stored as a string column;
// use ParseStatus on untrusted input so invalid values never enter an Item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ParseStatus maps a raw string onto a Status.  The boolean is false for
// anything outside the fixed vocabulary.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusArchived:
		return Status(s), true
	}
	return "", false
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step.  Archived is terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusPublished || next == StatusArchived
	case StatusPublished:
		return next == StatusArchived
	}
	return false
}

// Item is one blog post.  Tags are loaded from the `post_tag` join table
// and are stored exactly as typed; only comparisons fold case.
type Item struct {
	ID          uint64     `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Title       string     `db:"title" json:"title"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Body        string     `db:"body" json:"body"`
	Status      Status     `db:"status" json:"status"`
	Tags        []string   `db:"-" json:"tags"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
}

// Published is a convenience used by listing and index code.
func (it *Item) Published() bool { return it.Status == StatusPublished }
