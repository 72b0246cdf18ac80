// Package resolver maps recognized text onto display-ready scan results.
// It owns no state beyond the matcher and catalog it resolves against.
package resolver

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/matcher"
)

// InfoKind labels one line of product information shown on the result
// screen.
type InfoKind string

const (
	InfoCrop    InfoKind = "crop"
	InfoPest    InfoKind = "pest"
	InfoUsage   InfoKind = "usage"
	InfoCaution InfoKind = "caution"
)

// InfoItem is one display line derived from a catalog entry.
type InfoItem struct {
	Kind InfoKind
	Text string
}

// ScanResult is the outcome of resolving one piece of recognized text.
// Known results carry the catalog identity and its info items; unknown
// results carry the raw text so the operator can pick manually.
type ScanResult struct {
	Known         bool
	ID            string
	DisplayName   string
	Company       string
	Confidence    float64
	LowConfidence bool
	RawText       string
	Items         []InfoItem
}

// Resolver resolves recognized text lines into scan results.
type Resolver struct {
	engine *matcher.Engine
	config conf.MatchSettings
	log    *slog.Logger
}

// New builds a resolver over the catalog snapshot.
func New(cat *catalog.Catalog, config conf.MatchSettings) *Resolver {
	return &Resolver{
		engine: matcher.New(cat, config),
		config: config,
		log:    logging.ForService("resolver"),
	}
}

// ResolveOne resolves a single recognized text into a scan result.
func (r *Resolver) ResolveOne(rawText string) ScanResult {
	outcome := r.engine.Match(rawText)
	if !outcome.IsMatched() {
		return ScanResult{Known: false, RawText: strings.TrimSpace(rawText)}
	}

	entry := outcome.Entry()
	res := ScanResult{
		Known:         true,
		ID:            entry.ID,
		DisplayName:   entry.Name,
		Company:       entry.Company,
		Confidence:    outcome.Confidence(),
		LowConfidence: outcome.IsLowConfidence(r.config.LowConfidence),
		RawText:       strings.TrimSpace(rawText),
		Items:         infoItems(entry),
	}
	r.log.Debug("resolved scan",
		"id", res.ID,
		"kind", outcome.Kind().String(),
		"confidence", res.Confidence,
		"low_confidence", res.LowConfidence)
	return res
}

// Resolve resolves a batch of recognized text lines. Blank lines are
// skipped and known results are ordered before unknown ones, keeping the
// original order within each group.
func (r *Resolver) Resolve(rawTexts []string) []ScanResult {
	results := make([]ScanResult, 0, len(rawTexts))
	for _, raw := range rawTexts {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		results = append(results, r.ResolveOne(raw))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Known && !results[j].Known
	})
	return results
}

func infoItems(entry catalog.Entry) []InfoItem {
	var items []InfoItem
	for _, crop := range entry.Crops {
		items = append(items, InfoItem{Kind: InfoCrop, Text: crop})
	}
	for _, pest := range entry.Pests {
		items = append(items, InfoItem{Kind: InfoPest, Text: pest})
	}
	if entry.Usage != "" {
		items = append(items, InfoItem{Kind: InfoUsage, Text: entry.Usage})
	}
	if entry.Warnings != "" {
		items = append(items, InfoItem{Kind: InfoCaution, Text: entry.Warnings})
	}
	return items
}
