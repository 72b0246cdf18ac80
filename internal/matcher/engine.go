package matcher

import (
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/logging"
)

const (
	outcomeCacheTTL     = 5 * time.Minute
	outcomeCacheCleanup = 10 * time.Minute
)

// Engine matches recognized text against a catalog. It is safe for
// concurrent use; the catalog snapshot is immutable and results are
// memoized per normalized input.
type Engine struct {
	catalog *catalog.Catalog
	config  conf.MatchSettings
	cache   *gocache.Cache
	log     *slog.Logger

	// entry names normalized once, aligned with catalog order
	names [][]string
}

// New builds an engine over the given catalog snapshot.
func New(cat *catalog.Catalog, config conf.MatchSettings) *Engine {
	e := &Engine{
		catalog: cat,
		config:  config,
		cache:   gocache.New(outcomeCacheTTL, outcomeCacheCleanup),
		log:     logging.ForService("matcher"),
	}
	for _, entry := range cat.Entries() {
		e.names = append(e.names, Normalize(entry.Name))
	}
	return e
}

// Match resolves recognized text to a catalog outcome. Exact token
// matches always win over fuzzy similarity; when several entry names
// appear verbatim the one with the most tokens wins, with catalog order
// breaking ties.
func (e *Engine) Match(raw string) Outcome {
	tokens := Normalize(raw)
	key := strings.Join(tokens, " ")
	if len(tokens) == 0 {
		return None(key)
	}

	if cached, ok := e.cache.Get(key); ok {
		return cached.(Outcome)
	}

	outcome := e.match(tokens, key)
	e.cache.Set(key, outcome, gocache.DefaultExpiration)
	e.log.Debug("match resolved",
		"text", key,
		"kind", outcome.Kind().String(),
		"confidence", outcome.Confidence())
	return outcome
}

func (e *Engine) match(tokens []string, text string) Outcome {
	if entry, ok := e.matchExact(tokens); ok {
		return Exact(entry, text)
	}
	return e.matchFuzzy(text)
}

// matchExact looks for an entry whose full normalized name appears as a
// contiguous token run in the input. The entry with the most name tokens
// wins; the first catalog entry wins ties.
func (e *Engine) matchExact(tokens []string) (catalog.Entry, bool) {
	entries := e.catalog.Entries()

	best := -1
	bestLen := 0
	for i, name := range e.names {
		if len(name) == 0 || !containsRun(tokens, name) {
			continue
		}
		if len(name) > bestLen {
			best = i
			bestLen = len(name)
		}
	}
	if best < 0 {
		return catalog.Entry{}, false
	}
	return entries[best], true
}

// matchFuzzy scores every entry name against the whole normalized text
// and keeps the highest similarity at or above the configured floor.
func (e *Engine) matchFuzzy(text string) Outcome {
	entries := e.catalog.Entries()

	best := -1
	bestScore := 0.0
	for i, name := range e.names {
		if len(name) == 0 {
			continue
		}
		target := strings.Join(name, " ")
		score := similarity(reduceText(text, target), target)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < e.config.MinConfidence {
		return None(text)
	}

	outcome, err := Fuzzy(entries[best], bestScore, e.config.PromotionThreshold, text)
	if err != nil {
		return None(text)
	}
	return outcome
}

// reduceText collapses the input to the candidate when it contains the
// candidate verbatim, so surrounding noise is not scored.
func reduceText(text, candidate string) string {
	if strings.Contains(text, candidate) {
		return candidate
	}
	return text
}

// containsRun reports whether needle occurs as a contiguous subsequence
// of haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for j, tok := range needle {
			if haystack[start+j] != tok {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
