package message

import (
	"strings"

	"github.com/mjl-/mailparse/charset"
)

// Address as used in From, To and similar headers.
type Address struct {
	Email string `json:"email"` // Lower case, not validated.
	Name  string `json:"name"`  // Display name, decoded.
}

// ParseAddress parses a single address. For "display <email>", the text
// between the last "<" and ">" is the email address, and the display name is
// unquoted and decoded. Otherwise the whole string is the email address. Email
// addresses are lower-cased.
func ParseAddress(conv charset.Converter, s string) Address {
	if end := strings.LastIndexByte(s, '>'); end >= 0 {
		if start := strings.LastIndexByte(s[:end], '<'); start >= 0 {
			name := strings.TrimSpace(strings.Trim(strings.TrimSpace(s[:start]), `"'`))
			return Address{
				Email: strings.ToLower(strings.TrimSpace(s[start+1 : end])),
				Name:  strings.TrimSpace(DecodeWords(conv, name)),
			}
		}
	}
	return Address{Email: strings.ToLower(strings.TrimSpace(s))}
}

// ParseAddressList parses comma-separated addresses. Empty entries and
// addresses with empty email address are skipped.
//
// Commas in quoted display names are not recognized: `"Doe, Jane" <j@x>` is
// parsed as two entries. Callers needing strict parsing should use
// net/mail.ParseAddressList.
func ParseAddressList(conv charset.Converter, s string) []Address {
	var l []Address
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if a := ParseAddress(conv, t); a.Email != "" {
			l = append(l, a)
		}
	}
	return l
}
