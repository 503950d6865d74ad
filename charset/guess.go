package charset

import (
	"fmt"
	"strings"

	"github.com/gogs/chardet"
)

// Guesser guesses the encoding of text that is not valid UTF-8 and has no
// known charset.
type Guesser interface {
	Guess(text string) (Encoding, bool)
}

// Cyrillic guesses the first encoding that decodes text into something with
// at least one Cyrillic letter. It tries windows-1251 and iso-8859-1 first,
// then all other supported encodings. Only useful for mail that is mostly
// Cyrillic: any text with 8-bit bytes matches windows-1251.
type Cyrillic struct{}

var cyrillicCandidates = buildCyrillicCandidates()

func buildCyrillicCandidates() []Encoding {
	var l []Encoding
	for _, name := range []string{"windows-1251", "iso-8859-1"} {
		if e, ok := Resolve(name); ok {
			l = append(l, e)
		}
	}
	for _, e := range supported {
		if e.Name != l[0].Name && e.Name != l[1].Name {
			l = append(l, e)
		}
	}
	return l
}

func (Cyrillic) Guess(text string) (Encoding, bool) {
	for _, e := range cyrillicCandidates {
		s, err := e.Decode(text)
		if err == nil && hasCyrillic(s) {
			return e, true
		}
	}
	return Encoding{}, false
}

// hasCyrillic returns whether s has a letter in U+0400-U+045F.
func hasCyrillic(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r >= 0x0400 && r <= 0x045f
	}) >= 0
}

// Chardet guesses using statistical detection, for mail of any language.
type Chardet struct {
	MinConfidence int // 0-100. Guesses with lower confidence are ignored.
}

func (g Chardet) Guess(text string) (Encoding, bool) {
	r, err := chardet.NewTextDetector().DetectBest([]byte(text))
	if err != nil || r.Confidence < g.MinConfidence {
		return Encoding{}, false
	}
	return Resolve(r.Charset)
}

// Chain tries each guesser in order.
type Chain []Guesser

func (c Chain) Guess(text string) (Encoding, bool) {
	for _, g := range c {
		if e, ok := g.Guess(text); ok {
			return e, true
		}
	}
	return Encoding{}, false
}

// GuesserNames lists the names accepted by ParseGuesser.
var GuesserNames = []string{"cyrillic", "chardet", "chain", "none"}

// ParseGuesser returns the guesser for a configuration name. An empty name
// selects the cyrillic guesser, "none" returns a nil Guesser.
func ParseGuesser(name string) (Guesser, error) {
	switch strings.ToLower(name) {
	case "", "cyrillic":
		return Cyrillic{}, nil
	case "chardet":
		return Chardet{MinConfidence: 30}, nil
	case "chain":
		return Chain{Chardet{MinConfidence: 50}, Cyrillic{}}, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown charset guesser %q, must be one of %s", name, strings.Join(GuesserNames, ", "))
}
