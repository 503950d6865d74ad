package message

import (
	"strings"
)

// Received is a parsed Received trace header. Fields hold the text of their
// clause, e.g. "mail.example.org (mail.example.org [192.0.2.1])" for From.
type Received struct {
	From string `json:"from,omitempty"`
	By   string `json:"by,omitempty"`
	Via  string `json:"via,omitempty"`
	With string `json:"with,omitempty"`
	ID   string `json:"id,omitempty"`
	For  string `json:"for,omitempty"`
	Date *int64 `json:"date,omitempty"` // Unix time, from after the last ";".
}

func (r *Received) clause(keyword string) *string {
	switch strings.ToLower(keyword) {
	case "from":
		return &r.From
	case "by":
		return &r.By
	case "via":
		return &r.Via
	case "with":
		return &r.With
	case "id":
		return &r.ID
	case "for":
		return &r.For
	}
	return nil
}

// ParseReceived parses a Received header value. Clauses start at the keywords
// from, by, via, with, id and for, outside comments. Only the first clause for
// a keyword is kept. Text before the first keyword is ignored.
func ParseReceived(value string) Received {
	var r Received
	trace := value
	if i := strings.LastIndexByte(value, ';'); i >= 0 {
		trace = value[:i]
		r.Date = parseDate(value[i+1:])
	}

	var field *string
	var words []string
	flush := func() {
		if field != nil && *field == "" {
			*field = strings.Join(words, " ")
		}
		words = nil
	}
	var depth int
	for _, w := range strings.Fields(trace) {
		if depth == 0 {
			if f := r.clause(w); f != nil {
				flush()
				field = f
				continue
			}
		}
		depth = max(0, depth+strings.Count(w, "(")-strings.Count(w, ")"))
		words = append(words, w)
	}
	flush()
	return r
}
