// Package reference holds the static ingredient reference data used by the
// scoring engine: harmful ingredient fragments and the allergen vocabulary.
package reference

import (
	"fmt"
	"strings"
)

// HarmfulIngredient associates a name fragment with a severity score and a
// health impact description.
type HarmfulIngredient struct {
	Fragment string `json:"fragment"`
	Score    int    `json:"score"`
	Impact   string `json:"impact"`
}

// Table is an immutable ingredient reference table. Harmful fragments are
// matched in declaration order and only the first match counts.
type Table struct {
	harmful   []HarmfulIngredient
	allergens []string
}

// NewTable validates and copies the given entries into a Table.
func NewTable(harmful []HarmfulIngredient, allergens []string) (*Table, error) {
	t := &Table{
		harmful:   make([]HarmfulIngredient, 0, len(harmful)),
		allergens: make([]string, 0, len(allergens)),
	}

	for i, h := range harmful {
		fragment := strings.ToLower(strings.TrimSpace(h.Fragment))
		if fragment == "" {
			return nil, fmt.Errorf("harmful entry %d: fragment is required", i)
		}
		if h.Score < 0 || h.Score > 100 {
			return nil, fmt.Errorf("harmful entry %q: score %d out of range [0,100]", fragment, h.Score)
		}
		t.harmful = append(t.harmful, HarmfulIngredient{
			Fragment: fragment,
			Score:    h.Score,
			Impact:   h.Impact,
		})
	}

	for i, a := range allergens {
		name := strings.ToLower(strings.TrimSpace(a))
		if name == "" {
			return nil, fmt.Errorf("allergen entry %d: name is required", i)
		}
		t.allergens = append(t.allergens, name)
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on invalid input.
func MustNewTable(harmful []HarmfulIngredient, allergens []string) *Table {
	t, err := NewTable(harmful, allergens)
	if err != nil {
		panic(err)
	}
	return t
}

// MatchHarmful returns the first harmful entry whose fragment is contained in
// the ingredient token.
func (t *Table) MatchHarmful(token string) (HarmfulIngredient, bool) {
	token = strings.ToLower(token)
	for _, h := range t.harmful {
		if strings.Contains(token, h.Fragment) {
			return h, true
		}
	}
	return HarmfulIngredient{}, false
}

// MatchAllergens returns, in vocabulary order, every allergen contained in
// the token that the user also declared. Vocabulary entries the user did not
// declare never match.
func (t *Table) MatchAllergens(token string, userAllergens []string) []string {
	if len(userAllergens) == 0 {
		return nil
	}

	declared := make(map[string]struct{}, len(userAllergens))
	for _, a := range userAllergens {
		declared[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}

	token = strings.ToLower(token)
	var hits []string
	for _, allergen := range t.allergens {
		if _, ok := declared[allergen]; !ok {
			continue
		}
		if strings.Contains(token, allergen) {
			hits = append(hits, allergen)
		}
	}
	return hits
}

// Harmful returns a copy of the harmful entries in match order.
func (t *Table) Harmful() []HarmfulIngredient {
	return append([]HarmfulIngredient(nil), t.harmful...)
}

// Allergens returns a copy of the allergen vocabulary.
func (t *Table) Allergens() []string {
	return append([]string(nil), t.allergens...)
}
