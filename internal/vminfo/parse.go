package vminfo

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	errUnterminated = errors.New("unterminated quote")
	errTrailing     = errors.New("trailing characters after value")
)

// ParseError points at a line of a dump that was skipped or read leniently.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Parse reads key="value" lines. Keys may be quoted too and values may be
// bare, as VBoxManage prints numbers unquoted.
//
// Parse never fails on a single odd line. A quoted value left open is
// continued on the following lines until its closing quote, older
// VBoxManage releases print descriptions with raw newlines. A value with a
// stray unescaped quote runs up to the last quote of the line. Lines that
// still make no sense are skipped; Warnings lists both cases.
func Parse(text string) *Record {
	record := newRecord()

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, err := parseLine(line)
		switch {
		case err == nil:
			record.set(key, value)
		case errors.Is(err, errUnterminated):
			if k, v, last, ok := continued(lines, i); ok {
				record.set(k, v)
				i = last
				continue
			}
			key, value, err = parseLenient(line)
			if err != nil {
				record.warn(i+1, line, err.Error())
				continue
			}
			record.set(key, value)
			record.warn(i+1, line, "unterminated quote, value runs to end of line")
		case errors.Is(err, errTrailing):
			key, value, err = parseLenient(line)
			if err != nil {
				record.warn(i+1, line, err.Error())
				continue
			}
			record.set(key, value)
			record.warn(i+1, line, "stray quote in value")
		default:
			record.warn(i+1, line, err.Error())
		}
	}

	return record
}

// continued joins the lines following start until the open value is
// closed. It gives up as soon as the joined text stops being a value
// spanning lines, so the next key is never swallowed.
func continued(lines []string, start int) (string, string, int, bool) {
	joined := lines[start]
	for j := start + 1; j < len(lines); j++ {
		joined += "\n" + lines[j]
		key, value, err := parseLine(joined)
		if err == nil {
			return key, value, j, true
		}
		if !errors.Is(err, errUnterminated) {
			return "", "", 0, false
		}
	}
	return "", "", 0, false
}

func parseLine(line string) (string, string, error) {
	key, rest, err := splitKey(line)
	if err != nil {
		return "", "", err
	}

	if !strings.HasPrefix(rest, `"`) {
		return key, strings.TrimSpace(rest), nil
	}

	value, n, err := unquote(rest)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(rest[n:]) != "" {
		return "", "", errTrailing
	}

	return key, value, nil
}

// parseLenient reads a quoted value up to the last quote of the line, or to
// the end of the line when there is no closing quote.
func parseLenient(line string) (string, string, error) {
	key, rest, err := splitKey(line)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(rest, `"`) {
		return key, strings.TrimSpace(rest), nil
	}

	inner := rest[1:]
	if last := strings.LastIndexByte(inner, '"'); last >= 0 {
		inner = inner[:last]
	}
	return key, unescape(inner), nil
}

func splitKey(line string) (string, string, error) {
	var key, rest string
	if strings.HasPrefix(line, `"`) {
		k, n, err := unquote(line)
		if err != nil {
			return "", "", errors.New("unterminated quoted key")
		}
		key, rest = k, line[n:]
		if !strings.HasPrefix(rest, "=") {
			return "", "", errors.New("missing '=' after key")
		}
		rest = rest[1:]
	} else {
		i := strings.IndexByte(line, '=')
		if i < 0 {
			return "", "", errors.New("missing '='")
		}
		key, rest = strings.TrimSpace(line[:i]), line[i+1:]
	}

	if key == "" {
		return "", "", errors.New("empty key")
	}
	return key, rest, nil
}

// unquote decodes the quoted string at the start of s and returns it along
// with the number of bytes consumed, closing quote included.
func unquote(s string) (string, int, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			return unescape(s[1:i]), i + 1, nil
		case '\\':
			i++
		}
	}
	return "", 0, errUnterminated
}

// unescape decodes \\ \" \n \r and \t; other escapes are kept verbatim.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
