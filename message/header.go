// Package message parses raw RFC 5322/MIME messages into a structured record.
//
// Parsing is best-effort: malformed headers, boundaries and charsets degrade to
// partial results instead of errors. Only a part whose transfer encoding can't
// be decoded is reported as an error, see PartError.
package message

import (
	"strings"
)

// Header is a header field. Name and value are trimmed, continuation lines
// of folded values are joined with a single space.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Headers holds header fields in message order, including duplicates.
type Headers []Header

// ParseHeaders parses a header block. Lines are separated by CRLF or a bare
// LF. A line not starting with an ASCII letter or digit continues the previous
// line. Each logical line is split on the first colon, a line without colon
// becomes a header with empty value.
func ParseHeaders(block string) Headers {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if len(lines) > 0 && !isAlnum(line[0]) {
			lines[len(lines)-1] += " " + s
		} else {
			lines = append(lines, s)
		}
	}

	h := make(Headers, 0, len(lines))
	for _, line := range lines {
		name, value, _ := strings.Cut(line, ":")
		h = append(h, Header{strings.TrimSpace(name), strings.TrimSpace(value)})
	}
	return h
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// SplitHeader splits text at the first blank line into a header block and a
// body. Both CRLF and bare LF line endings are recognized. Text without blank
// line is all header.
func SplitHeader(text string) (header, body string) {
	if strings.HasPrefix(text, "\r\n") {
		return "", text[2:]
	} else if strings.HasPrefix(text, "\n") {
		return "", text[1:]
	}
	crlf := strings.Index(text, "\n\r\n")
	lf := strings.Index(text, "\n\n")
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return strings.TrimSuffix(text[:crlf], "\r"), text[crlf+3:]
	case lf >= 0:
		return strings.TrimSuffix(text[:lf], "\r"), text[lf+2:]
	}
	return text, ""
}

// Get returns the value of the first header with name, compared
// case-insensitively. An absent header and an empty value both return "".
func (h Headers) Get(name string) string {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return hdr.Value
		}
	}
	return ""
}

// Values returns the values of all headers with name, in message order.
func (h Headers) Values(name string) []string {
	var l []string
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			l = append(l, hdr.Value)
		}
	}
	return l
}

// GetParams returns the value of the first header with name, split on ";"
// into the primary value and its key=value parameters. Parameter keys are
// lower-cased, values are trimmed and stripped of surrounding quotes.
// Parameters without "=" are skipped. Quoted semicolons are not recognized.
func (h Headers) GetParams(name string) (string, map[string]string) {
	params := map[string]string{}
	t := strings.Split(h.Get(name), ";")
	for _, s := range t[1:] {
		k, v, ok := strings.Cut(strings.TrimSpace(s), "=")
		if !ok {
			continue
		}
		params[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `"'`))
	}
	return strings.TrimSpace(t[0]), params
}

// String returns the headers as a header block with CRLF line endings,
// without the terminating blank line.
func (h Headers) String() string {
	var b strings.Builder
	for _, hdr := range h {
		b.WriteString(hdr.Name)
		b.WriteString(": ")
		b.WriteString(hdr.Value)
		b.WriteString("\r\n")
	}
	return b.String()
}
