// Package locations maps free-text subcellular location annotations onto a
// fixed set of category labels.
package locations

import (
	"sort"
	"strings"
)

// Category labels. Categorize always returns one of these.
const (
	CategoryUnknown       = "Unknown"
	CategoryMitochondrion = "Mitochondrion"
	CategoryER            = "Endoplasmic Reticulum"
	CategoryGolgi         = "Golgi apparatus"
	CategoryPlasmaMembr   = "Plasma membrane"
	CategoryLysosome      = "Lysosome"
	CategoryEndosome      = "Endosome"
	CategoryPeroxisome    = "Peroxisome"
	CategoryCytoplasm     = "Cytoplasm"
	CategoryNucleus       = "Nucleus"
	CategoryCytoskeleton  = "Cytoskeleton"
	CategoryExtracellular = "Extracellular"
	CategoryRibosome      = "Ribosome"
	CategoryCentrosome    = "Centrosome"
	CategoryMembrane      = "Membrane"
	CategoryOther         = "Other"
)

// rule maps any of its keywords, matched as a case-insensitive substring, to a
// category label.
type rule struct {
	category string
	keywords []string
}

// rules is evaluated in order and the first match wins. Order matters:
// compound annotations like "nuclear membrane" must resolve to the more
// specific category, so the bare "membrane" catch-all stays last.
var rules = []rule{
	{CategoryMitochondrion, []string{"mitochond"}},
	{CategoryER, []string{"endoplasmic reticulum"}},
	{CategoryGolgi, []string{"golgi"}},
	{CategoryPlasmaMembr, []string{"plasma membrane", "cell membrane", "cell surface"}},
	{CategoryLysosome, []string{"lysosom"}},
	{CategoryEndosome, []string{"endosom"}},
	{CategoryPeroxisome, []string{"peroxisom"}},
	{CategoryCytoplasm, []string{"cytosol", "cytoplasm"}},
	{CategoryNucleus, []string{"nucleus", "nuclear", "nucleoplasm", "nucleolus", "chromosom", "chromatin"}},
	{CategoryCytoskeleton, []string{"cytoskeleton", "microtubule", "actin", "intermediate filament"}},
	{CategoryExtracellular, []string{"extracellular", "secreted"}},
	{CategoryRibosome, []string{"ribosom"}},
	{CategoryCentrosome, []string{"centrosom"}},
	{CategoryMembrane, []string{"membrane"}},
}

// Categorize maps a free-text location annotation to exactly one category
// label. Empty or all-whitespace input yields Unknown; text matching no rule
// yields Other.
func Categorize(location string) string {
	if strings.TrimSpace(location) == "" {
		return CategoryUnknown
	}
	lowered := strings.ToLower(location)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}

// Categories returns every label Categorize can produce, sorted ascending.
func Categories() []string {
	out := []string{CategoryUnknown, CategoryOther}
	for _, r := range rules {
		out = append(out, r.category)
	}
	sort.Strings(out)
	return out
}

// IsCategory reports whether label is one of the fixed category labels.
// Matching is case-sensitive, as are the labels themselves.
func IsCategory(label string) bool {
	if label == CategoryUnknown || label == CategoryOther {
		return true
	}
	for _, r := range rules {
		if r.category == label {
			return true
		}
	}
	return false
}
