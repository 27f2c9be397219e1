// internal/content/engine.go
//
// Content relevance engine.
//
// Context
// -------
// Listing pages need three derived views over a pool of posts: a "related
// posts" ranking for the currently viewed item, a reading-time estimate, and
// tag filtering/enumeration.  All of it is pure computation over values the
// caller passes in; the engine holds no state beyond its tunables and is
// safe for concurrent use.
//
// Ranking contract (Related)
// --------------------------
//   - The target itself is excluded from the pool, matched by slug.
//   - Score = number of tags shared with the target, compared
//     case-insensitively and as a set (duplicate tags count once).
//   - Zero-score candidates are dropped entirely.
//   - Descending by score; ties keep the candidates' original relative
//     order in the pool, so output is deterministic.
//   - Result is truncated to limit entries.
//
// Tag casing
// ----------
// Tags are stored as typed and only folded at comparison time.  AllTags
// therefore dedupes case-sensitively as stored; "AI" and "ai" are distinct
// output entries even though Related treats them as the same tag.
package content

import (
	"fmt"
	"sort"
	"strings"
)

// EngineConfig carries the tunables the engine closes over.  Exposed as a
// struct, rather than package-level constants, so tests can override them.
type EngineConfig struct {
	// WordsPerMinute is the average reading speed used by ReadingTime.
	WordsPerMinute int

	// DefaultRelatedLimit is used when a caller passes no explicit limit.
	DefaultRelatedLimit int
}

// DefaultEngineConfig matches the values the site has always shipped with.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{WordsPerMinute: 200, DefaultRelatedLimit: 3}
}

// Engine computes derived content views.  Zero value is invalid; use New.
type Engine struct {
	cfg EngineConfig
}

// New returns an Engine.  Non-positive tunables fall back to defaults so a
// partially filled config cannot produce a division by zero.
func New(cfg EngineConfig) *Engine {
	def := DefaultEngineConfig()
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = def.WordsPerMinute
	}
	if cfg.DefaultRelatedLimit <= 0 {
		cfg.DefaultRelatedLimit = def.DefaultRelatedLimit
	}
	return &Engine{cfg: cfg}
}

// Related ranks pool by shared-tag overlap with target and returns at most
// limit items.  See the package header for the full contract.  A limit of
// zero or less yields an empty result, as does a target with no tags.
func (e *Engine) Related(target *Item, pool []*Item, limit int) []*Item {
	if target == nil || limit <= 0 || len(pool) == 0 || len(target.Tags) == 0 {
		return nil
	}

	want := foldTagSet(target.Tags)

	type scored struct {
		item  *Item
		score int
	}
	var ranked []scored
	for _, cand := range pool {
		if cand.Slug == target.Slug {
			continue
		}
		n := overlap(want, cand.Tags)
		if n == 0 {
			continue
		}
		ranked = append(ranked, scored{item: cand, score: n})
	}

	// Stable: equal scores keep pool order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]*Item, len(ranked))
	for i, s := range ranked {
		out[i] = s.item
	}
	return out
}

// RelatedDefault is Related with the configured default limit.
func (e *Engine) RelatedDefault(target *Item, pool []*Item) []*Item {
	return e.Related(target, pool, e.cfg.DefaultRelatedLimit)
}

// ReadingTime is the integer minute estimate for a post body.  Label is the
// presentation the site uses; callers that want different wording can format
// Minutes themselves.
type ReadingTime struct {
	Minutes int `json:"minutes"`
}

// Label renders the conventional "N min read" form.
func (rt ReadingTime) Label() string { return fmt.Sprintf("%d min read", rt.Minutes) }

// ReadingTime estimates reading duration from whitespace-delimited word
// count, rounding up to whole minutes.  Never returns less than one minute,
// including for an empty body; "0 min read" must not appear on the site.
func (e *Engine) ReadingTime(body string) ReadingTime {
	words := len(strings.Fields(body))
	minutes := (words + e.cfg.WordsPerMinute - 1) / e.cfg.WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return ReadingTime{Minutes: minutes}
}

// FilterByTag returns the subsequence of pool whose tag set contains tag,
// compared case-insensitively.  Pool order is preserved.
func (e *Engine) FilterByTag(pool []*Item, tag string) []*Item {
	folded := strings.ToLower(tag)
	var out []*Item
	for _, it := range pool {
		for _, t := range it.Tags {
			if strings.ToLower(t) == folded {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// AllTags returns the distinct tags across pool, as stored, sorted bytewise
// ascending.  No case folding on output; see the package header.
func (e *Engine) AllTags(pool []*Item) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range pool {
		for _, t := range it.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// foldTagSet lowers tags into a set, collapsing duplicates.
func foldTagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

// overlap counts distinct folded tags present in want.
func overlap(want map[string]struct{}, tags []string) int {
	seen := make(map[string]struct{}, len(tags))
	n := 0
	for _, t := range tags {
		f := strings.ToLower(t)
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		if _, ok := want[f]; ok {
			n++
		}
	}
	return n
}
