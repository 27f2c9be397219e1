// internal/contact/validate_test.go
//
// Unit-tests for intake validation and defaulting.
//
// Run: go test ./internal/contact -v

package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/apperr"
)

func validInput() ContactInput {
	return ContactInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "Let's talk.",
	}
}

// failedFields extracts the field names from a validation error.
func failedFields(t *testing.T, err error) []string {
	t.Helper()
	ve := apperr.IsValidation(err)
	require.NotNil(t, ve, "expected ValidationError, got %v", err)
	out := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		out[i] = f.Field
	}
	return out
}

func TestValidateContact_Defaults(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	rec, err := v.ValidateContact(validInput())
	require.NoError(t, err)

	assert.Equal(t, SourceWebsite, rec.Source)
	assert.Equal(t, []Label{}, rec.Labels)
	assert.False(t, rec.AllowMarketing, "consent must never default to true")
	assert.Nil(t, rec.Group)
}

func TestValidateContact_RequiredFields(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	in := validInput()
	in.FirstName = "   "
	assert.Equal(t, []string{"firstName"}, failedFields(t, second(v.ValidateContact(in))))

	in = validInput()
	in.LastName = ""
	assert.Equal(t, []string{"lastName"}, failedFields(t, second(v.ValidateContact(in))))

	in = validInput()
	in.Message = "\n\t"
	assert.Equal(t, []string{"message"}, failedFields(t, second(v.ValidateContact(in))))
}

func TestValidateContact_CollectsEveryFailure(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	_, err := v.ValidateContact(ContactInput{})
	assert.ElementsMatch(t,
		[]string{"firstName", "lastName", "message", "email"},
		failedFields(t, err))
}

func TestValidateContact_EmailGrammar(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	bad := []string{"not-an-email", "a@b", "@example.com", "a b@example.com", ""}
	for _, e := range bad {
		in := validInput()
		in.Email = e
		_, err := v.ValidateContact(in)
		assert.Contains(t, failedFields(t, err), "email", "email %q should fail", e)
	}

	in := validInput()
	in.Email = "  First.Last@sub.example.co  "
	rec, err := v.ValidateContact(in)
	require.NoError(t, err)
	assert.Equal(t, "First.Last@sub.example.co", rec.Email)
}

func TestValidateContact_Enums(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	// Unset group is allowed; an invalid value is not.
	in := validInput()
	in.Group = "venture-capital"
	rec, err := v.ValidateContact(in)
	require.NoError(t, err)
	require.NotNil(t, rec.Group)
	assert.Equal(t, GroupVentureCapital, *rec.Group)

	in.Group = "vulture-capital"
	_, err = v.ValidateContact(in)
	assert.Equal(t, []string{"group"}, failedFields(t, err))

	in = validInput()
	in.Source = "carrier-pigeon"
	_, err = v.ValidateContact(in)
	assert.Equal(t, []string{"source"}, failedFields(t, err))

	in = validInput()
	in.Source = "referral"
	rec, err = v.ValidateContact(in)
	require.NoError(t, err)
	assert.Equal(t, SourceReferral, rec.Source)
}

func TestValidateContact_LabelVocabulary(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	in := validInput()
	in.Labels = []string{"proptech", "bitcoin"}
	rec, err := v.ValidateContact(in)
	require.NoError(t, err)
	assert.Equal(t, []Label{LabelPropTech, LabelBitcoin}, rec.Labels)

	in.Labels = []string{"proptech", "astrology"}
	_, err = v.ValidateContact(in)
	assert.Equal(t, []string{"labels"}, failedFields(t, err))
}

func TestValidateContact_ExplicitConsent(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	yes := true
	in := validInput()
	in.AllowMarketing = &yes
	rec, err := v.ValidateContact(in)
	require.NoError(t, err)
	assert.True(t, rec.AllowMarketing)
}

func TestValidateNewsletterSignup(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig())

	s, err := v.ValidateNewsletterSignup(SignupInput{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"general"}, s.Topics, "topics default to the baseline")
	assert.Equal(t, SourceWebsite, s.Source)

	s, err = v.ValidateNewsletterSignup(SignupInput{
		Email:  "ada@example.com",
		Topics: []string{"proptech", " bitcoin "},
		Source: "social",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"proptech", "bitcoin"}, s.Topics)
	assert.Equal(t, SourceSocial, s.Source)

	_, err = v.ValidateNewsletterSignup(SignupInput{Email: "nope"})
	assert.Equal(t, []string{"email"}, failedFields(t, err))
}

func TestValidatorConfigOverrides(t *testing.T) {
	v := NewValidator(ValidatorConfig{DefaultSource: SourceEvent, DefaultTopic: "crypto"})

	rec, err := v.ValidateContact(validInput())
	require.NoError(t, err)
	assert.Equal(t, SourceEvent, rec.Source)

	s, err := v.ValidateNewsletterSignup(SignupInput{Email: "a@b.co"})
	require.NoError(t, err)
	assert.Equal(t, []string{"crypto"}, s.Topics)
}

// second discards the first return so the error feeds failedFields inline.
func second(_ *Record, err error) error { return err }
