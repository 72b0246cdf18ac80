package matcher

import (
	"fmt"

	"github.com/agrovision/kiosk-go/internal/catalog"
)

// MatchKind classifies how a catalog entry was matched.
type MatchKind int

const (
	// MatchNone means no catalog entry cleared the confidence floor.
	MatchNone MatchKind = iota
	// MatchExact means the entry name appeared verbatim in the text.
	MatchExact
	// MatchFuzzy means the entry was matched by string similarity.
	MatchFuzzy
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "EXACT"
	case MatchFuzzy:
		return "FUZZY"
	default:
		return "NONE"
	}
}

// Outcome is the result of matching recognized text against the catalog.
// Construct only through None, Exact, or Fuzzy so the kind and confidence
// always agree: exact outcomes carry confidence 1, fuzzy outcomes carry a
// confidence strictly between 0 and 1, and none carries 0.
type Outcome struct {
	kind       MatchKind
	entry      catalog.Entry
	confidence float64
	text       string
}

// None reports that nothing matched the given normalized text.
func None(text string) Outcome {
	return Outcome{kind: MatchNone, text: text}
}

// Exact reports a verbatim name match.
func Exact(entry catalog.Entry, text string) Outcome {
	return Outcome{kind: MatchExact, entry: entry, confidence: 1, text: text}
}

// Fuzzy reports a similarity match. A confidence at or above the
// promotion threshold is reported as exact; a confidence outside (0, 1)
// is an error rather than a silently wrong outcome.
func Fuzzy(entry catalog.Entry, confidence, promotionThreshold float64, text string) (Outcome, error) {
	if confidence >= promotionThreshold {
		return Exact(entry, text), nil
	}
	if confidence <= 0 || confidence >= 1 {
		return None(text), fmt.Errorf("fuzzy confidence %v outside (0, 1)", confidence)
	}
	return Outcome{kind: MatchFuzzy, entry: entry, confidence: confidence, text: text}, nil
}

// Kind returns how the match was made.
func (o Outcome) Kind() MatchKind { return o.kind }

// Entry returns the matched catalog entry. Meaningful only when IsMatched.
func (o Outcome) Entry() catalog.Entry { return o.entry }

// Confidence returns the match confidence in [0, 1].
func (o Outcome) Confidence() float64 { return o.confidence }

// Text returns the normalized text the match was computed from.
func (o Outcome) Text() string { return o.text }

// IsMatched reports whether any catalog entry matched.
func (o Outcome) IsMatched() bool { return o.kind != MatchNone }

// IsLowConfidence reports whether a matched outcome sits below the given
// threshold and should be surfaced to the operator as tentative.
func (o Outcome) IsLowConfidence(threshold float64) bool {
	return o.IsMatched() && o.confidence < threshold
}
