package pofile

import "fmt"

// Stats holds translation state counts of one catalog, following the
// bucketing msgfmt --statistics uses: a fuzzy entry is never counted as
// translated, an empty translation is untranslated regardless of flags.
type Stats struct {
	Translated   int `json:"translated"`
	Fuzzy        int `json:"fuzzy"`
	Untranslated int `json:"untranslated"`
}

// Stats counts translation states over all entries. The metadata header and
// obsolete entries are excluded.
func (f *File) Stats() Stats {
	stats := Stats{}

	for i := range f.Entries {
		entry := &f.Entries[i]
		if entry.Obsolete || entry.IsHeader() {
			continue
		}

		switch {
		case !entry.IsTranslated():
			stats.Untranslated++
		case entry.HasFlag("fuzzy"):
			stats.Fuzzy++
		default:
			stats.Translated++
		}
	}

	return stats
}

// Total is the number of counted messages.
func (s Stats) Total() int {
	return s.Translated + s.Fuzzy + s.Untranslated
}

// Percent is the share of translated messages, 100 for an empty catalog.
func (s Stats) Percent() float64 {
	total := s.Total()
	if total == 0 {
		return 100
	}
	return float64(s.Translated) / float64(total) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"%d translated, %d fuzzy, %d untranslated",
		s.Translated, s.Fuzzy, s.Untranslated,
	)
}
