package locations

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"empty", "", CategoryUnknown},
		{"whitespace only", "   \t ", CategoryUnknown},
		{"mitochondrion", "Mitochondrion inner membrane", CategoryMitochondrion},
		{"endoplasmic reticulum", "Endoplasmic reticulum lumen", CategoryER},
		{"golgi", "Golgi apparatus, trans-Golgi network", CategoryGolgi},
		{"plasma membrane", "Plasma membrane; Lipid-anchor", CategoryPlasmaMembr},
		{"cell membrane", "Cell membrane; Multi-pass membrane protein", CategoryPlasmaMembr},
		{"cell surface", "Cell surface", CategoryPlasmaMembr},
		{"lysosome", "Lysosome lumen", CategoryLysosome},
		{"endosome", "Early endosome membrane", CategoryEndosome},
		{"peroxisome", "Peroxisome matrix", CategoryPeroxisome},
		{"cytosol", "Cytosol", CategoryCytoplasm},
		{"cytoplasm", "Cytoplasm", CategoryCytoplasm},
		{"nucleus", "Nucleus", CategoryNucleus},
		{"nucleolus", "Nucleolus", CategoryNucleus},
		{"nuclear envelope", "Nuclear envelope", CategoryNucleus},
		{"chromatin", "Chromatin-associated", CategoryNucleus},
		{"cytoskeleton", "Cytoskeleton", CategoryCytoskeleton},
		{"microtubule", "Microtubule organizing center", CategoryCytoskeleton},
		{"secreted", "Secreted; Extracellular space", CategoryExtracellular},
		{"ribosome", "Ribosome, small subunit", CategoryRibosome},
		{"centrosome", "Centrosome", CategoryCentrosome},
		{"bare membrane", "Apical membrane", CategoryMembrane},
		{"unmapped", "random unmapped tissue", CategoryOther},
		{"case insensitive", "MITOCHONDRION", CategoryMitochondrion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.location); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.location, got, tt.want)
			}
		})
	}
}

// Compound annotations must resolve to the earlier, more specific rule, not
// the bare "membrane" catch-all.
func TestCategorizeRuleOrder(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"nuclear membrane", CategoryNucleus},
		{"mitochondrion outer membrane", CategoryMitochondrion},
		{"endoplasmic reticulum membrane", CategoryER},
		{"golgi apparatus membrane", CategoryGolgi},
		{"plasma membrane", CategoryPlasmaMembr},
		{"lysosomal membrane", CategoryLysosome},
	}

	for _, tt := range tests {
		if got := Categorize(tt.location); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.location, got, tt.want)
		}
	}
}

func TestCategorizeIsTotal(t *testing.T) {
	inputs := []string{
		"", " ", "membrane", "Cytoplasm; Nucleus", "something else entirely",
		"NUCLEAR MEMBRANE", "ünïcode wörds", "cell surface; secreted",
	}
	for _, input := range inputs {
		got := Categorize(input)
		if !IsCategory(got) {
			t.Errorf("Categorize(%q) = %q, not a known category", input, got)
		}
	}
}

func TestCategories(t *testing.T) {
	categories := Categories()
	if len(categories) != 16 {
		t.Fatalf("expected 16 categories, got %d: %v", len(categories), categories)
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1] >= categories[i] {
			t.Fatalf("categories not sorted ascending: %v", categories)
		}
	}
	for _, label := range []string{CategoryUnknown, CategoryOther, CategoryMembrane} {
		if !IsCategory(label) {
			t.Errorf("IsCategory(%q) = false, want true", label)
		}
	}
	if IsCategory("mitochondrion") {
		t.Error("IsCategory should be case-sensitive")
	}
}
