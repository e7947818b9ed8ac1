// Package anonymizer masks personally identifying values in text before
// it is indexed or sent to an LLM provider. Detection is pattern-based:
// emails, phone numbers, company registration numbers, plus any proper
// names registered by the caller (student, tutor, company). Each
// distinct original value maps to a stable placeholder so the mapping
// can be displayed and reversed.
package anonymizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// EntityType classifies a detected value.
type EntityType string

const (
	EntityEmail   EntityType = "email"
	EntityPhone   EntityType = "phone"
	EntityCompany EntityType = "company"
	EntityPerson  EntityType = "person"
	EntitySiren   EntityType = "registration"
)

// Mapping is one original -> placeholder pair.
type Mapping struct {
	EntityType EntityType `json:"entity_type"`
	Original   string     `json:"original_value"`
	Anonymized string     `json:"anonymized_value"`
	Active     bool       `json:"is_active"`
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// French and international formats: 06 12 34 56 78, +33 6 12 34 56 78.
	phoneRe = regexp.MustCompile(`(?:\+33\s?|0)[1-9](?:[\s.\-]?\d{2}){4}`)
	// SIREN (9 digits) / SIRET (14 digits) with optional grouping.
	sirenRe = regexp.MustCompile(`\b\d{3}[\s]?\d{3}[\s]?\d{3}(?:[\s]?\d{5})?\b`)
)

// Anonymizer holds the known names and the accumulated mappings.
type Anonymizer struct {
	mu       sync.Mutex
	mappings map[string]*Mapping // keyed by original value
	counters map[EntityType]int
	names    map[string]EntityType // registered proper names
}

func New() *Anonymizer {
	return &Anonymizer{
		mappings: make(map[string]*Mapping),
		counters: make(map[EntityType]int),
		names:    make(map[string]EntityType),
	}
}

// RegisterName adds a proper name (person or company) to mask wherever
// it appears. Empty or very short names are ignored — masking two-letter
// fragments would shred the text.
func (a *Anonymizer) RegisterName(name string, typ EntityType) {
	name = strings.TrimSpace(name)
	if len(name) < 3 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.names[name] = typ
}

// Anonymize replaces detected values in text with placeholders,
// recording a mapping for each distinct original.
func (a *Anonymizer) Anonymize(text string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := emailRe.ReplaceAllStringFunc(text, func(m string) string {
		return a.placeholderLocked(m, EntityEmail)
	})
	out = phoneRe.ReplaceAllStringFunc(out, func(m string) string {
		return a.placeholderLocked(m, EntityPhone)
	})
	out = sirenRe.ReplaceAllStringFunc(out, func(m string) string {
		return a.placeholderLocked(m, EntitySiren)
	})

	// Longest names first so "Acme Industries" wins over "Acme".
	names := make([]string, 0, len(a.names))
	for n := range a.names {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, n := range names {
		if strings.Contains(out, n) {
			out = strings.ReplaceAll(out, n, a.placeholderLocked(n, a.names[n]))
		}
	}
	return out
}

// Deanonymize restores the original values in text.
func (a *Anonymizer) Deanonymize(text string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range a.mappings {
		if m.Active {
			text = strings.ReplaceAll(text, m.Anonymized, m.Original)
		}
	}
	return text
}

// Mappings returns a copy of all recorded mappings, stable-ordered by
// placeholder.
func (a *Anonymizer) Mappings() []Mapping {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Mapping, 0, len(a.mappings))
	for _, m := range a.mappings {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Anonymized < out[j].Anonymized })
	return out
}

func (a *Anonymizer) placeholderLocked(original string, typ EntityType) string {
	if m, ok := a.mappings[original]; ok {
		return m.Anonymized
	}
	a.counters[typ]++
	placeholder := fmt.Sprintf("[%s_%d]", strings.ToUpper(string(typ)), a.counters[typ])
	a.mappings[original] = &Mapping{
		EntityType: typ,
		Original:   original,
		Anonymized: placeholder,
		Active:     true,
	}
	return placeholder
}
