// internal/contact/validate.go
//
// Intake validation and normalization.
//
// Context
// -------
// Untrusted form input arrives as ContactInput / SignupInput, raw strings
// straight from a decoded request body.  ValidateContact and
// ValidateNewsletterSignup check every field, apply defaults, and return a
// fully normalized record, or an *apperr.ValidationError naming every field
// that failed.  There is never a partial record: callers get one or the
// other.
//
// Workflow
//   •  Required text fields fail when empty after trimming whitespace.
//   •  Email must parse as an RFC 5322 address AND carry a dot in the
//      domain, so "a@b" is rejected even though net/mail accepts it.
//   •  Enum fields (group, source, labels) are parsed against their closed
//      vocabularies.  Unset group is fine; an unknown value is a field
//      error.  Labels are enforced against the vocabulary at this layer
//      rather than deferred to storage constraints.
//   •  Defaults: source falls back to the configured baseline channel,
//      labels to an empty set, allowMarketing to false (consent must be
//      explicit), newsletter topics to the configured baseline topic.
//
// Validation is deterministic; no retries, no side effects, no I/O.
// Persistence and notification happen in the caller, after success.
package contact

import (
	"net/mail"
	"strings"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

// ContactInput is the raw contact-form payload.
type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`

	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`

	Group          string   `json:"group"`
	Labels         []string `json:"labels"`
	Source         string   `json:"source"`
	AllowMarketing *bool    `json:"allowMarketing"`
}

// SignupInput is the raw newsletter-form payload.
type SignupInput struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Topics    []string `json:"topics"`
	Source    string   `json:"source"`
}

// ValidatorConfig carries the baseline defaults the validator closes over.
type ValidatorConfig struct {
	DefaultSource Source
	DefaultTopic  string
}

// DefaultValidatorConfig is what production uses.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{DefaultSource: SourceWebsite, DefaultTopic: "general"}
}

// Validator normalizes untrusted intake.  Safe for concurrent use.
type Validator struct {
	cfg ValidatorConfig
}

// NewValidator returns a Validator, falling back to production defaults for
// any zero-valued tunable.
func NewValidator(cfg ValidatorConfig) *Validator {
	def := DefaultValidatorConfig()
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = def.DefaultSource
	}
	if cfg.DefaultTopic == "" {
		cfg.DefaultTopic = def.DefaultTopic
	}
	return &Validator{cfg: cfg}
}

// ValidateContact checks raw and returns a normalized Record with defaults
// applied, or an error carrying every failed field.
func (v *Validator) ValidateContact(raw ContactInput) (*Record, error) {
	ve := &apperr.ValidationError{}

	firstName := requireText(ve, "firstName", raw.FirstName)
	lastName := requireText(ve, "lastName", raw.LastName)
	message := requireText(ve, "message", raw.Message)
	email := requireEmail(ve, raw.Email)

	var group *Group
	if g := strings.TrimSpace(raw.Group); g != "" {
		parsed, ok := ParseGroup(g)
		if !ok {
			ve.Add("group", "unknown group "+quote(g))
		} else {
			group = &parsed
		}
	}

	source := v.parseSource(ve, raw.Source)

	labels := make([]Label, 0, len(raw.Labels))
	for _, l := range raw.Labels {
		parsed, ok := ParseLabel(strings.TrimSpace(l))
		if !ok {
			ve.Add("labels", "unknown label "+quote(l))
			continue
		}
		labels = append(labels, parsed)
	}

	if !ve.Empty() {
		return nil, ve
	}

	rec := &Record{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Message:   message,
		Company:   strings.TrimSpace(raw.Company),
		Phone:     strings.TrimSpace(raw.Phone),
		Website:   strings.TrimSpace(raw.Website),
		Twitter:   strings.TrimSpace(raw.Twitter),
		LinkedIn:  strings.TrimSpace(raw.LinkedIn),
		GitHub:    strings.TrimSpace(raw.GitHub),
		Group:     group,
		Labels:    labels,
		Source:    source,
	}
	if raw.AllowMarketing != nil {
		rec.AllowMarketing = *raw.AllowMarketing
	}
	return rec, nil
}

// ValidateNewsletterSignup checks raw and returns a normalized Signup.
// Only the email is required.
func (v *Validator) ValidateNewsletterSignup(raw SignupInput) (*Signup, error) {
	ve := &apperr.ValidationError{}

	email := requireEmail(ve, raw.Email)
	source := v.parseSource(ve, raw.Source)

	topics := make([]string, 0, len(raw.Topics))
	for _, t := range raw.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		topics = []string{v.cfg.DefaultTopic}
	}

	if !ve.Empty() {
		return nil, ve
	}

	return &Signup{
		Email:     email,
		FirstName: strings.TrimSpace(raw.FirstName),
		LastName:  strings.TrimSpace(raw.LastName),
		Topics:    topics,
		Source:    source,
	}, nil
}

// parseSource applies the baseline default and rejects unknown channels.
func (v *Validator) parseSource(ve *apperr.ValidationError, raw string) Source {
	s := strings.TrimSpace(raw)
	if s == "" {
		return v.cfg.DefaultSource
	}
	parsed, ok := ParseSource(s)
	if !ok {
		ve.Add("source", "unknown source "+quote(s))
		return ""
	}
	return parsed
}

// requireText trims and records a field error when the result is empty.
func requireText(ve *apperr.ValidationError, field, raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		ve.Add(field, "must not be empty")
	}
	return s
}

// requireEmail enforces address grammar: RFC 5322 parse plus at least one
// dot in the domain part.
func requireEmail(ve *apperr.ValidationError, raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		ve.Add("email", "must not be empty")
		return ""
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		ve.Add("email", "not a valid email address")
		return ""
	}
	at := strings.LastIndexByte(addr.Address, '@')
	if at < 0 || !strings.Contains(addr.Address[at+1:], ".") {
		ve.Add("email", "not a valid email address")
		return ""
	}
	return addr.Address
}

// quote wraps user input for error messages.
func quote(s string) string { return `"` + s + `"` }
