package matching

import (
	"strings"
	"unicode"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/agnivade/levenshtein"
)

// legalSuffixes are company-form tokens that carry no identifying information.
var legalSuffixes = map[string]bool{
	"sac": true, "sa": true, "srl": true, "eirl": true, "saa": true, "sociedad": true, "anonima": true, "cerrada": true,
}

// SupplierHint guesses which supplier a bank movement belongs to from its free-text description.
// A RUC appearing in the description wins outright; otherwise each supplier name is compared
// against every same-length word window of the description and the lowest normalized
// Levenshtein ratio under maxRatio wins. Returns nil when nothing is close enough.
func SupplierHint(description string, suppliers []domain.Supplier, maxRatio float64) *domain.Supplier {
	descWords := normalizeWords(description)
	if len(descWords) == 0 {
		return nil
	}

	for i := range suppliers {
		ruc := strings.TrimSpace(suppliers[i].RUC)
		if ruc != "" && containsWord(descWords, ruc) {
			return &suppliers[i]
		}
	}

	var best *domain.Supplier
	bestRatio := maxRatio
	for i := range suppliers {
		nameWords := significantWords(normalizeWords(suppliers[i].BusinessName))
		if len(nameWords) == 0 {
			continue
		}
		ratio := bestWindowRatio(descWords, nameWords)
		if ratio < bestRatio {
			bestRatio = ratio
			best = &suppliers[i]
		}
	}
	return best
}

// DistanceRatio is the Levenshtein distance between a and b divided by the longer length.
func DistanceRatio(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

func bestWindowRatio(descWords, nameWords []string) float64 {
	name := strings.Join(nameWords, " ")
	size := len(nameWords)
	if size > len(descWords) {
		return DistanceRatio(strings.Join(descWords, " "), name)
	}

	best := 1.0
	for start := 0; start+size <= len(descWords); start++ {
		window := strings.Join(descWords[start:start+size], " ")
		if ratio := DistanceRatio(window, name); ratio < best {
			best = ratio
		}
	}
	return best
}

func normalizeWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
}

// significantWords drops legal-form suffixes and dots ("S.A.C." -> "sac" -> dropped).
func significantWords(words []string) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ReplaceAll(w, ".", "")
		if w == "" || legalSuffixes[w] {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}
