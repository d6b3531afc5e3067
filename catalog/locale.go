package catalog

import (
	"strings"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LocaleInfo is display metadata of one locale code.
type LocaleInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	IsSystem bool   `json:"is_system,omitempty"`
}

// NormalizeLocale turns a catalog directory name into a BCP 47 style tag,
// e.g. `de_AT.UTF-8` becomes `de-AT`.
func NormalizeLocale(code string) string {
	if index := strings.IndexByte(code, '.'); index >= 0 {
		code = code[:index]
	}
	if index := strings.IndexByte(code, '@'); index >= 0 {
		code = code[:index]
	}

	return strings.ReplaceAll(code, "_", "-")
}

// DisplayName maps a locale code to its English language name, empty string
// when the code is not a recognizable tag.
func DisplayName(code string) string {
	tag, err := language.Parse(NormalizeLocale(code))
	if err != nil {
		return ""
	}

	return display.English.Tags().Name(tag)
}

// SystemLocale reports the locale of the running system as a BCP 47 tag.
func SystemLocale() (string, error) {
	lang, err := locale.GetLocale()
	if err != nil {
		return "", err
	}

	return NormalizeLocale(lang), nil
}

// MatchesSystem checks whether a catalog locale code refers to the same
// language as the given system locale.
func MatchesSystem(code, sysLocale string) bool {
	if sysLocale == "" {
		return false
	}

	normalized := NormalizeLocale(code)
	if strings.EqualFold(normalized, sysLocale) {
		return true
	}

	codeTag, err := language.Parse(normalized)
	if err != nil {
		return false
	}
	sysTag, err := language.Parse(sysLocale)
	if err != nil {
		return false
	}

	codeBase, _ := codeTag.Base()
	sysBase, _ := sysTag.Base()

	return codeBase == sysBase
}

type LocaleList []LocaleInfo

func (l LocaleList) Len() int {
	return len(l)
}

func (l LocaleList) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

func (l LocaleList) Bytes(i int) []byte {
	name := l[i].Name
	if name == "" {
		name = l[i].Code
	}
	return []byte(name)
}

// DescribeLocales resolves display names for locale codes and sorts the
// result by name with English collation. The system locale is marked when it
// appears in the list.
func DescribeLocales(codes []string, sysLocale string) []LocaleInfo {
	list := make(LocaleList, 0, len(codes))
	for _, code := range codes {
		list = append(list, LocaleInfo{
			Code:     code,
			Name:     DisplayName(code),
			IsSystem: MatchesSystem(code, sysLocale),
		})
	}

	collate.New(language.English).Sort(list)

	return list
}
