package catalog

import (
	"testing"
)

func TestNormalizeLocale(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"de", "de"},
		{"de_AT", "de-AT"},
		{"en_US.UTF-8", "en-US"},
		{"sr@latin", "sr"},
		{"zh_Hans", "zh-Hans"},
	}

	for _, c := range cases {
		if got := NormalizeLocale(c.code); got != c.want {
			t.Errorf("normalize %q: got %q, want %q", c.code, got, c.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("de"); got != "German" {
		t.Errorf("display name of de: %q, want: %q", got, "German")
	}
	if got := DisplayName("fr_CA"); got == "" {
		t.Error("display name of fr_CA should not be empty")
	}
	if got := DisplayName("not a locale!!"); got != "" {
		t.Errorf("display name of junk code: %q, want empty", got)
	}
}

func TestMatchesSystem(t *testing.T) {
	cases := []struct {
		code string
		sys  string
		want bool
	}{
		{"de", "de-AT", true},
		{"de_AT", "de-AT", true},
		{"pt_BR", "pt-BR", true},
		{"fr", "de", false},
		{"de", "", false},
	}

	for _, c := range cases {
		if got := MatchesSystem(c.code, c.sys); got != c.want {
			t.Errorf("match %q against %q: got %v, want %v", c.code, c.sys, got, c.want)
		}
	}
}

func TestDescribeLocalesSortsByName(t *testing.T) {
	infos := DescribeLocales([]string{"fr", "de", "en"}, "")

	got := []string{}
	for _, info := range infos {
		got = append(got, info.Code)
	}

	// English, French, German
	want := []string{"en", "fr", "de"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted codes: %v, want: %v", got, want)
		}
	}
}

func TestDescribeLocalesMarksSystem(t *testing.T) {
	infos := DescribeLocales([]string{"de", "fr"}, "fr-FR")

	for _, info := range infos {
		if info.Code == "fr" && !info.IsSystem {
			t.Error("fr not marked as system locale")
		}
		if info.Code == "de" && info.IsSystem {
			t.Error("de wrongly marked as system locale")
		}
	}
}
