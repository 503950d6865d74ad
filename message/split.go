package message

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Container types whose child segments start with a header section. Segments
// of other multipart types are treated as header-less bodies.
var multipartWithHeaders = []string{
	"multipart/alternative",
	"multipart/related",
	"multipart/mixed",
	"multipart/signed",
	"multipart/report",
}

// Part is a leaf of a message: a non-multipart body with its headers.
type Part struct {
	Header Headers
	Body   string // Still transfer-encoded, surrounding whitespace removed.
	Level  int    // 0 for a message without multipart, 1 for any part within a multipart.
	Path   []int  // 1-based index within each enclosing multipart. Empty for level 0.
}

// PathString returns the path as dotted numbers like "1.2", or "" for a
// top-level part.
func (p Part) PathString() string {
	l := make([]string, len(p.Path))
	for i, n := range p.Path {
		l[i] = strconv.Itoa(n)
	}
	return strings.Join(l, ".")
}

// SplitMessage splits a message into its leaf parts, in message order.
func SplitMessage(text string) []Part {
	header, body := SplitHeader(text)
	return splitParts(ParseHeaders(header), body, 0, nil)
}

// SplitBody splits text that is a child segment of a container with
// parentContentType into leaf parts. The segment starts with headers only
// if the parent is one of the common multipart types. SplitBody can be used to
// re-split a leaf: a leaf without boundary results in a single leaf with the
// same body.
func SplitBody(text, parentContentType string, level int) []Part {
	return splitBody(text, parentContentType, level, nil)
}

func splitBody(text, parentContentType string, level int, path []int) []Part {
	var h Headers
	body := text
	if slices.Contains(multipartWithHeaders, strings.ToLower(strings.TrimSpace(parentContentType))) {
		var header string
		header, body = SplitHeader(text)
		h = ParseHeaders(header)
	}
	return splitParts(h, body, level, path)
}

// splitParts returns the leaves for body with headers h. Each call returns a
// new slice, children are appended by the caller.
func splitParts(h Headers, body string, level int, path []int) []Part {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	ct, params := h.GetParams("Content-Type")
	if boundary := params["boundary"]; boundary != "" {
		// Without any delimiter line, we keep the container as leaf so its
		// content isn't lost.
		if segments, ok := splitBoundary(body, boundary); ok {
			ct = strings.ToLower(ct)
			var parts []Part
			for i, seg := range segments {
				parts = append(parts, splitBody(seg, ct, 1, append(slices.Clip(path), i+1))...)
			}
			return parts
		}
	}
	return []Part{{h, strings.TrimSpace(body), level, path}}
}

// splitBoundary returns the segments between delimiter lines of boundary, with
// trailing whitespace removed. Leading whitespace is kept, a segment starting
// with an empty line has no headers. Without closing delimiter, the last
// segment runs to the end of body. If a closing delimiter comes before any
// other delimiter, there are no segments. If there is no delimiter line at
// all, ok is false.
func splitBoundary(body, boundary string) (segments []string, ok bool) {
	bound := "--" + boundary
	start := -1
	for offset := 0; offset < len(body); {
		next := len(body)
		if i := strings.IndexByte(body[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}
		if match, closing := checkBound(body[offset:next], bound); match {
			ok = true
			if start >= 0 {
				segments = append(segments, strings.TrimRightFunc(body[start:offset], unicode.IsSpace))
			}
			if closing {
				return segments, true
			}
			start = next
		}
		offset = next
	}
	if start >= 0 {
		segments = append(segments, strings.TrimRightFunc(body[start:], unicode.IsSpace))
	}
	return segments, ok
}

// checkBound returns whether line is a delimiter line for bound (with the
// leading "--"), and whether it is the closing delimiter. Bound must be
// followed by end of line or whitespace, so a nested boundary that has bound as
// prefix does not match.
func checkBound(line, bound string) (match, closing bool) {
	if !strings.HasPrefix(line, bound) {
		return false, false
	}
	line = line[len(bound):]
	if strings.HasPrefix(line, "--") {
		return true, true
	}
	if len(line) == 0 {
		return true, false
	}
	switch line[0] {
	case ' ', '\t', '\r', '\n':
		return true, false
	}
	return false, false
}
