package pofile

import (
	"strings"
	"testing"
)

const sampleCatalog = `# Translators: demo team
msgid ""
msgstr ""
"Project-Id-Version: demo 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"

#: src/main.c:42
msgid "Hello"
msgstr "Hallo"

#, fuzzy
msgctxt "menu"
msgid "Open"
msgstr "Öffnen"

msgid "New"
msgstr ""

msgid "%d file"
msgid_plural "%d files"
msgstr[0] "%d Datei"
msgstr[1] "%d Dateien"

#~ msgid "Legacy"
#~ msgstr "Alt"
`

func parseSample(t *testing.T) *File {
	file, err := Parse(strings.NewReader(sampleCatalog), "sample.po")
	if err != nil {
		t.Fatalf("failed to parse sample catalog: %s", err)
	}

	return file
}

func TestParseEntryCount(t *testing.T) {
	file := parseSample(t)

	if len(file.Entries) != 6 {
		t.Fatalf("entry count: %d, want: 6", len(file.Entries))
	}
}

func TestParseHeader(t *testing.T) {
	file := parseSample(t)

	header := &file.Entries[0]
	if !header.IsHeader() {
		t.Fatal("first entry not recognized as header")
	}

	want := "Project-Id-Version: demo 1.0\nContent-Type: text/plain; charset=UTF-8\n"
	if header.Msgstr != want {
		t.Errorf("header msgstr:\n\t%q\nwant:\n\t%q", header.Msgstr, want)
	}
}

func TestParsePlainEntry(t *testing.T) {
	file := parseSample(t)

	entry := &file.Entries[1]
	if entry.Msgid != "Hello" || entry.Msgstr != "Hallo" {
		t.Errorf("entry: %q -> %q, want: %q -> %q", entry.Msgid, entry.Msgstr, "Hello", "Hallo")
	}
	if entry.Line != 8 {
		t.Errorf("entry line: %d, want: 8", entry.Line)
	}
	if !entry.IsTranslated() {
		t.Error("entry should count as translated")
	}
}

func TestParseContextAndFlags(t *testing.T) {
	file := parseSample(t)

	entry := &file.Entries[2]
	if entry.Msgctxt != "menu" {
		t.Errorf("msgctxt: %q, want: %q", entry.Msgctxt, "menu")
	}
	if !entry.HasFlag("fuzzy") {
		t.Error("fuzzy flag not picked up")
	}
	if entry.HasFlag("c-format") {
		t.Error("unexpected c-format flag")
	}
}

func TestParsePluralEntry(t *testing.T) {
	file := parseSample(t)

	entry := &file.Entries[4]
	if entry.MsgidPlural != "%d files" {
		t.Errorf("msgid_plural: %q, want: %q", entry.MsgidPlural, "%d files")
	}
	if len(entry.PluralStrs) != 2 {
		t.Fatalf("plural form count: %d, want: 2", len(entry.PluralStrs))
	}
	if entry.PluralStrs[1] != "%d Dateien" {
		t.Errorf("plural form 1: %q, want: %q", entry.PluralStrs[1], "%d Dateien")
	}
	if !entry.IsTranslated() {
		t.Error("fully filled plural entry should count as translated")
	}
}

func TestParseObsoleteEntry(t *testing.T) {
	file := parseSample(t)

	entry := &file.Entries[5]
	if !entry.Obsolete {
		t.Error("obsolete marker not picked up")
	}
	if entry.Msgid != "Legacy" || entry.Msgstr != "Alt" {
		t.Errorf("entry: %q -> %q, want: %q -> %q", entry.Msgid, entry.Msgstr, "Legacy", "Alt")
	}
}

func TestParseMultilineMsgid(t *testing.T) {
	source := `msgid ""
"multi "
"line"
msgstr "x"
`

	file, err := Parse(strings.NewReader(source), "multi.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	if len(file.Entries) != 1 {
		t.Fatalf("entry count: %d, want: 1", len(file.Entries))
	}

	entry := &file.Entries[0]
	if entry.Msgid != "multi line" {
		t.Errorf("msgid: %q, want: %q", entry.Msgid, "multi line")
	}
}

func TestParseEscapes(t *testing.T) {
	source := `msgid "a\"b\n\tc\\d"
msgstr "x"
`

	file, err := Parse(strings.NewReader(source), "escape.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	want := "a\"b\n\tc\\d"
	if got := file.Entries[0].Msgid; got != want {
		t.Errorf("msgid: %q, want: %q", got, want)
	}
}

func TestParseEntrySplitWithoutBlankLine(t *testing.T) {
	source := `msgid "one"
msgstr "1"
msgid "two"
msgstr "2"
`

	file, err := Parse(strings.NewReader(source), "dense.po")
	if err != nil {
		t.Fatalf("failed to parse catalog: %s", err)
	}

	if len(file.Entries) != 2 {
		t.Fatalf("entry count: %d, want: 2", len(file.Entries))
	}
	if file.Entries[1].Msgid != "two" {
		t.Errorf("second msgid: %q, want: %q", file.Entries[1].Msgid, "two")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"unclosed string", "msgid \"unclosed\nmsgstr \"x\"\n"},
		{"continuation without keyword", "\"floating\"\n"},
		{"unknown keyword", "frobnicate \"x\"\n"},
		{"bad plural index", "msgid \"a\"\nmsgid_plural \"b\"\nmsgstr[x] \"c\"\n"},
	}

	for _, c := range cases {
		_, err := Parse(strings.NewReader(c.source), "bad.po")
		if err == nil {
			t.Errorf("%s: expected parse error, got none", c.name)
		}
	}
}

func TestParseErrorCarriesLineNumber(t *testing.T) {
	source := "msgid \"ok\"\nmsgstr \"ok\"\n\ngarbage here\n"

	_, err := Parse(strings.NewReader(source), "bad.po")
	if err == nil {
		t.Fatal("expected parse error, got none")
	}

	if !strings.Contains(err.Error(), "bad.po:4") {
		t.Errorf("error %q does not point at bad.po:4", err)
	}
}
