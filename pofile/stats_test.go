package pofile

import (
	"strings"
	"testing"
)

func TestStatsBuckets(t *testing.T) {
	file := parseSample(t)

	stats := file.Stats()

	want := Stats{Translated: 2, Fuzzy: 1, Untranslated: 1}
	if stats != want {
		t.Errorf("stats: %+v, want: %+v", stats, want)
	}

	if stats.Total() != 4 {
		t.Errorf("total: %d, want: 4", stats.Total())
	}
	if stats.Percent() != 50 {
		t.Errorf("percent: %f, want: 50", stats.Percent())
	}
}

func TestStatsFuzzyNeedsTranslation(t *testing.T) {
	source := `#, fuzzy
msgid "pending"
msgstr ""
`

	file, err := Parse(strings.NewReader(source), "fuzzy.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	stats := file.Stats()
	if stats.Fuzzy != 0 || stats.Untranslated != 1 {
		t.Errorf("empty fuzzy entry counted as fuzzy: %+v", stats)
	}
}

func TestStatsPartialPlural(t *testing.T) {
	source := `msgid "%d item"
msgid_plural "%d items"
msgstr[0] "%d Stück"
msgstr[1] ""
`

	file, err := Parse(strings.NewReader(source), "plural.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	stats := file.Stats()
	if stats.Untranslated != 1 || stats.Translated != 0 {
		t.Errorf("partial plural entry counted as translated: %+v", stats)
	}
}

func TestStatsEmptyCatalog(t *testing.T) {
	file, err := Parse(strings.NewReader(""), "empty.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	stats := file.Stats()
	if stats.Total() != 0 {
		t.Errorf("total: %d, want: 0", stats.Total())
	}
	if stats.Percent() != 100 {
		t.Errorf("percent of empty catalog: %f, want: 100", stats.Percent())
	}
}

func TestStatsString(t *testing.T) {
	stats := Stats{Translated: 3, Fuzzy: 2, Untranslated: 1}

	want := "3 translated, 2 fuzzy, 1 untranslated"
	if got := stats.String(); got != want {
		t.Errorf("output: %q, want: %q", got, want)
	}
}
