// internal/contact/enums.go
//
// Closed string vocabularies for lead classification.
//
// Context
// -------
// Group, Source, Label, and Platform are fixed vocabularies.  Each gets its
// own named type plus a Parse helper, so an invalid value can exist only as
// a raw string at the intake boundary, never inside a Record.  The storage
// schema stores the same strings.
package contact

// Group classifies an investor-type lead.  Unset is allowed; an invalid
// value is not.
type Group string

const (
	GroupVentureCapital Group = "venture-capital"
	GroupPrivateEquity  Group = "private-equity"
	GroupAngel          Group = "angel"
	GroupFamilyOffice   Group = "family-office"
	GroupInstitutional  Group = "institutional"
)

// ParseGroup maps raw input onto a Group.  False for unknown values.
func ParseGroup(s string) (Group, bool) {
	switch Group(s) {
	case GroupVentureCapital, GroupPrivateEquity, GroupAngel,
		GroupFamilyOffice, GroupInstitutional:
		return Group(s), true
	}
	return "", false
}

// Source describes the acquisition channel of a lead or signup.
type Source string

const (
	SourceWebsite    Source = "website"
	SourceNewsletter Source = "newsletter"
	SourceReferral   Source = "referral"
	SourceSocial     Source = "social"
	SourceEvent      Source = "event"
)

// ParseSource maps raw input onto a Source.  False for unknown values.
func ParseSource(s string) (Source, bool) {
	switch Source(s) {
	case SourceWebsite, SourceNewsletter, SourceReferral,
		SourceSocial, SourceEvent:
		return Source(s), true
	}
	return "", false
}

// Label is one sector tag from the controlled vocabulary.
type Label string

const (
	LabelPropTech Label = "proptech"
	LabelAI       Label = "ai"
	LabelBitcoin  Label = "bitcoin"
	LabelFinance  Label = "finance"
	LabelClimate  Label = "climate"
)

// ParseLabel maps raw input onto a Label.  False for unknown values.
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelPropTech, LabelAI, LabelBitcoin, LabelFinance, LabelClimate:
		return Label(s), true
	}
	return "", false
}

// Platform names a social network a handle belongs to.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformGitHub   Platform = "github"
)

// ParsePlatform maps raw input onto a Platform.  False for unknown values.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformTwitter, PlatformLinkedIn, PlatformGitHub:
		return Platform(s), true
	}
	return "", false
}
