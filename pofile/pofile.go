// Package pofile implements a line oriented reader for gettext PO catalogs,
// good enough for counting translation states and spotting broken files.
// Actual compilation is left to msgfmt.
package pofile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is a single message of a PO catalog.
type Entry struct {
	Msgctxt     string
	Msgid       string
	MsgidPlural string
	Msgstr      string
	PluralStrs  []string // indexed msgstr[N] forms of a plural entry

	Flags    []string // flag names from `#,` comment lines
	Obsolete bool     // entry kept with `#~` markers

	Line int // line number of first msgid line
}

// IsHeader checks if entry is the catalog metadata header.
func (e *Entry) IsHeader() bool {
	return e.Msgid == "" && e.MsgidPlural == "" && e.Msgctxt == ""
}

// HasFlag checks if entry carries given flag, e.g. "fuzzy".
func (e *Entry) HasFlag(name string) bool {
	for _, flag := range e.Flags {
		if flag == name {
			return true
		}
	}
	return false
}

// IsTranslated reports whether entry has a complete translation. For plural
// entries every plural form has to be filled in.
func (e *Entry) IsTranslated() bool {
	if e.MsgidPlural != "" {
		if len(e.PluralStrs) == 0 {
			return false
		}
		for _, str := range e.PluralStrs {
			if str == "" {
				return false
			}
		}
		return true
	}

	return e.Msgstr != ""
}

// File is a parsed PO catalog.
type File struct {
	Path    string
	Entries []Entry
}

// ParseFile reads and parses a PO catalog from disk.
func ParseFile(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %s", path, err)
	}
	defer file.Close()

	return Parse(file, path)
}

// field keywords a quoted continuation line can append to.
const (
	fieldNone = iota
	fieldMsgctxt
	fieldMsgid
	fieldMsgidPlural
	fieldMsgstr
	fieldMsgstrPlural
)

type parser struct {
	path    string
	lineNum int

	cur        *Entry
	curField   int
	pluralIdx  int
	sawContent bool // cur has at least one msgid/msgctxt keyword

	entries []Entry
}

// Parse reads a PO catalog from r. `path` is only used in error messages.
func Parse(r io.Reader, path string) (*File, error) {
	p := &parser{path: path}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.lineNum++
		if err := p.feedLine(scanner.Text()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %s", path, err)
	}

	p.flush()

	return &File{Path: path, Entries: p.entries}, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.path, p.lineNum, fmt.Sprintf(format, args...))
}

func (p *parser) flush() {
	if p.cur != nil && p.sawContent {
		p.entries = append(p.entries, *p.cur)
	}
	p.cur = nil
	p.curField = fieldNone
	p.pluralIdx = 0
	p.sawContent = false
}

func (p *parser) entry() *Entry {
	if p.cur == nil {
		p.cur = &Entry{}
	}
	return p.cur
}

func (p *parser) feedLine(line string) error {
	line = strings.TrimSpace(line)

	if line == "" {
		p.flush()
		return nil
	}

	obsolete := false
	if rest, ok := strings.CutPrefix(line, "#~"); ok {
		obsolete = true
		line = strings.TrimSpace(rest)
		if line == "" || strings.HasPrefix(line, "|") {
			// previous-msgid record of an obsolete entry, nothing to keep
			return nil
		}
	}

	if strings.HasPrefix(line, "#") {
		return p.feedComment(line)
	}

	if strings.HasPrefix(line, "\"") {
		if obsolete {
			p.entry().Obsolete = true
		}
		return p.feedContinuation(line)
	}

	if err := p.feedKeyword(line); err != nil {
		return err
	}

	// marked after the keyword is handled, a msgid keyword may have started
	// a fresh entry the marker belongs to
	if obsolete {
		p.entry().Obsolete = true
	}

	return nil
}

func (p *parser) feedComment(line string) error {
	rest, ok := strings.CutPrefix(line, "#,")
	if !ok {
		// translator/extracted/reference comments carry no state needed here
		return nil
	}

	entry := p.entry()
	for _, flag := range strings.Split(rest, ",") {
		flag = strings.TrimSpace(flag)
		if flag != "" {
			entry.Flags = append(entry.Flags, flag)
		}
	}

	return nil
}

func (p *parser) feedContinuation(line string) error {
	text, err := unquote(line)
	if err != nil {
		return p.errorf("%s", err)
	}

	entry := p.cur
	if entry == nil || p.curField == fieldNone {
		return p.errorf("string continuation without a keyword line")
	}

	switch p.curField {
	case fieldMsgctxt:
		entry.Msgctxt += text
	case fieldMsgid:
		entry.Msgid += text
	case fieldMsgidPlural:
		entry.MsgidPlural += text
	case fieldMsgstr:
		entry.Msgstr += text
	case fieldMsgstrPlural:
		entry.PluralStrs[p.pluralIdx] += text
	}

	return nil
}

func (p *parser) feedKeyword(line string) error {
	keyword, rest, found := strings.Cut(line, " ")
	if !found {
		return p.errorf("malformed line %q", line)
	}

	text, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return p.errorf("%s", err)
	}

	// a fresh msgctxt or msgid after translation lines starts the next entry
	if keyword == "msgctxt" || keyword == "msgid" {
		if p.curField == fieldMsgstr || p.curField == fieldMsgstrPlural {
			p.flush()
		}
	}

	entry := p.entry()

	switch {
	case keyword == "msgctxt":
		entry.Msgctxt = text
		p.curField = fieldMsgctxt
		p.sawContent = true
	case keyword == "msgid":
		entry.Msgid = text
		entry.Line = p.lineNum
		p.curField = fieldMsgid
		p.sawContent = true
	case keyword == "msgid_plural":
		entry.MsgidPlural = text
		p.curField = fieldMsgidPlural
	case keyword == "msgstr":
		entry.Msgstr = text
		p.curField = fieldMsgstr
	case strings.HasPrefix(keyword, "msgstr["):
		index, err := pluralIndex(keyword)
		if err != nil {
			return p.errorf("%s", err)
		}
		for len(entry.PluralStrs) <= index {
			entry.PluralStrs = append(entry.PluralStrs, "")
		}
		entry.PluralStrs[index] = text
		p.curField = fieldMsgstrPlural
		p.pluralIdx = index
	default:
		return p.errorf("unknown keyword %q", keyword)
	}

	return nil
}

// pluralIndex extracts N from a `msgstr[N]` keyword.
func pluralIndex(keyword string) (int, error) {
	open := strings.IndexByte(keyword, '[')
	end := strings.IndexByte(keyword, ']')
	if open < 0 || end < open {
		return 0, fmt.Errorf("malformed plural keyword %q", keyword)
	}

	index, err := strconv.Atoi(keyword[open+1 : end])
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid plural index in %q", keyword)
	}

	return index, nil
}

// unquote strips surrounding double quotes and decodes C style escapes. The
// decoding is lenient, unknown escape sequences keep their character.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", s)
	}

	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var builder strings.Builder
	builder.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			builder.WriteByte(c)
			continue
		}

		i++
		switch body[i] {
		case 'n':
			builder.WriteByte('\n')
		case 't':
			builder.WriteByte('\t')
		case 'r':
			builder.WriteByte('\r')
		case '"':
			builder.WriteByte('"')
		case '\\':
			builder.WriteByte('\\')
		default:
			builder.WriteByte(body[i])
		}
	}

	return builder.String(), nil
}
