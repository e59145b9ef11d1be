package progression

import (
	"cmp"
	"slices"
)

// Repository is one counted repository and its bytes of code per language.
type Repository struct {
	Name      string           `json:"name"`
	FullName  string           `json:"full_name"`
	Languages map[string]int64 `json:"languages"`
}

// Bytes returns the repository's total across all languages.
func (r Repository) Bytes() int64 {
	var n int64
	for _, b := range r.Languages {
		n += b
	}
	return n
}

// TotalExperience sums every byte count of every language in every
// repository.
func TotalExperience(repos []Repository) int64 {
	var total int64
	for _, r := range repos {
		total += r.Bytes()
	}
	return total
}

// LanguageShare is one language's contribution to the total.
type LanguageShare struct {
	Language string  `json:"language"`
	Bytes    int64   `json:"bytes"`
	Share    float64 `json:"share"`
}

// Languages merges the per-repository maps and returns languages ordered by
// descending byte count, ties broken by name. Languages with no bytes are
// dropped. If top > 0 only the first top entries are returned.
func Languages(repos []Repository, top int) []LanguageShare {
	sums := make(map[string]int64)
	var total int64
	for _, r := range repos {
		for lang, b := range r.Languages {
			if b <= 0 {
				continue
			}
			sums[lang] += b
			total += b
		}
	}

	out := make([]LanguageShare, 0, len(sums))
	for lang, b := range sums {
		out = append(out, LanguageShare{
			Language: lang,
			Bytes:    b,
			Share:    float64(b) / float64(total),
		})
	}
	slices.SortFunc(out, func(a, b LanguageShare) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return cmp.Compare(a.Language, b.Language)
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}
