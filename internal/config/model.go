// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                        – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `SITE_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling but *before* validation,
// so a validated Config never stores Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host, port,
// or flags without touching Vault.  The *secret* portion (`Password`) can
// live in Vault and be injected at runtime, keeping credentials out of flat
// files and git history.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password" validate:"required"`
}

//
// Content section
//

// Content tunes the relevance engine.
type Content struct {
	WordsPerMinute int `koanf:"words_per_minute" validate:"min=1"`
	RelatedLimit   int `koanf:"related_limit"    validate:"min=1"`
}

//
// Contact section
//

// Contact carries the intake baseline defaults.
type Contact struct {
	DefaultSource string `koanf:"default_source" validate:"required"`
	DefaultTopic  string `koanf:"default_topic"  validate:"required"`
}

//
// Search section
//

// Search locates the on-disk Bleve index.
type Search struct {
	IndexPath string `koanf:"index_path" validate:"required"`
}

//
// Admin section
//

// Admin holds the bearer-token secret for the /admin API.
type Admin struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
}

//
// Geo section
//

// Geo points at the MaxMind database used for lead enrichment.  Optional;
// when empty, enrichment records no country.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or SITE_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // SITE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Content  Content  `koanf:"content"`
	Contact  Contact  `koanf:"contact"`
	Search   Search   `koanf:"search"`
	Admin    Admin    `koanf:"admin"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
