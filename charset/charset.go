// Package charset resolves charset names and converts text between encodings.
//
// Names are resolved through a static alias table against the encodings
// available from golang.org/x/text. Conversion never fails: for unknown or
// missing source charsets, text that is valid UTF-8 is kept, otherwise a
// Guesser picks a source encoding, and as last resort the text is read as
// UTF-8 with invalid bytes replaced.
package charset

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/mjl-/mailparse/metrics"
	"github.com/mjl-/mailparse/mlog"
)

var pkglog = mlog.New("charset", nil)

// Encoding is an encoding we can transcode from and to.
type Encoding struct {
	Name  string   // Preferred MIME name, e.g. "windows-1251" or "ISO-8859-1".
	Names []string // All known names, lower case.

	enc encoding.Encoding
}

// IsUTF8 returns whether e is UTF-8.
func (e Encoding) IsUTF8() bool {
	return e.enc == unicode.UTF8
}

// Decode returns text decoded from e to UTF-8.
func (e Encoding) Decode(text string) (string, error) {
	if e.IsUTF8() {
		return strings.ToValidUTF8(text, "\uFFFD"), nil
	}
	return e.enc.NewDecoder().String(text)
}

// Encode returns UTF-8 text encoded as e. Characters e cannot represent are
// replaced.
func (e Encoding) Encode(text string) (string, error) {
	if e.IsUTF8() {
		return text, nil
	}
	return encoding.ReplaceUnsupported(e.enc.NewEncoder()).String(text)
}

// supported is the list of encodings available for transcoding, in the order
// they are tried when guessing. Built once, never modified.
var supported = buildSupported()

func buildSupported() []Encoding {
	var l []Encoding
	seen := map[encoding.Encoding]bool{}
	add := func(encs ...encoding.Encoding) {
		for _, enc := range encs {
			if enc == nil || seen[enc] {
				continue
			}
			seen[enc] = true
			names := encodingNames(enc)
			if len(names) == 0 {
				continue
			}
			l = append(l, Encoding{names[0], lowerAll(names), enc})
		}
	}
	add(charmap.All...)
	add(japanese.All...)
	add(korean.All...)
	add(simplifiedchinese.All...)
	add(traditionalchinese.All...)
	add(unicode.All...)
	add(utf32.All...)
	// US-ASCII is only known to the IANA index.
	if ascii, err := ianaindex.IANA.Encoding("US-ASCII"); err == nil {
		add(ascii)
	}
	return l
}

// encodingNames returns the MIME, IANA and WHATWG names of enc, preferred first.
func encodingNames(enc encoding.Encoding) []string {
	var l []string
	add := func(s string, err error) {
		if err == nil && s != "" && !slices.ContainsFunc(l, func(n string) bool { return strings.EqualFold(n, s) }) {
			l = append(l, s)
		}
	}
	add(ianaindex.MIME.Name(enc))
	add(ianaindex.IANA.Name(enc))
	add(htmlindex.Name(enc))
	return l
}

func lowerAll(l []string) []string {
	r := make([]string, len(l))
	for i, s := range l {
		r[i] = strings.ToLower(s)
	}
	return r
}

// Supported returns the encodings available for transcoding. The returned
// slice must not be modified.
func Supported() []Encoding {
	return supported
}

// Names returns the canonical names in the alias table, sorted.
func Names() []string {
	l := maps.Keys(aliasTable)
	slices.Sort(l)
	return l
}

// Aliases returns the aliases for a canonical name in the alias table.
func Aliases(canonical string) []string {
	return slices.Clone(aliasTable[strings.ToLower(canonical)])
}

// Resolve looks up a supported encoding by name or alias, case-insensitively.
//
// The name and, if the name is in the alias table, its canonical name and
// aliases are matched against the names of the supported encodings. If that
// fails, the candidates are looked up as WHATWG labels and IANA names.
func Resolve(name string) (Encoding, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Encoding{}, false
	}
	cands := candidateNames(name)
	for _, e := range supported {
		for _, n := range e.Names {
			if slices.Contains(cands, n) {
				return e, true
			}
		}
	}
	for _, c := range cands {
		enc, err := htmlindex.Get(c)
		if err != nil || enc == nil {
			enc, err = ianaindex.IANA.Encoding(c)
		}
		if err != nil || enc == nil {
			continue
		}
		for _, e := range supported {
			if e.enc == enc {
				return e, true
			}
		}
	}
	return Encoding{}, false
}

// DefaultEncoding is used when no source encoding is known and guessing fails.
var DefaultEncoding = mustResolve("utf-8")

func mustResolve(name string) Encoding {
	e, ok := Resolve(name)
	if !ok {
		panic("missing encoding " + name)
	}
	return e
}

// Transcode converts text from src to dst.
func Transcode(text string, src, dst Encoding) (string, error) {
	s, err := src.Decode(text)
	if err != nil {
		return "", err
	}
	return dst.Encode(s)
}

// Converter converts text between charsets. The zero value does no guessing.
// A Converter is safe for concurrent use if its Guesser is.
type Converter struct {
	Log     *slog.Logger
	Guesser Guesser // If nil, no guessing is attempted for unknown source charsets.
}

// NewConverter returns a converter with the default Cyrillic guesser.
func NewConverter(elog *slog.Logger) Converter {
	return Converter{elog, Cyrillic{}}
}

// ToUTF8 converts text of unknown charset to UTF-8.
func (c Converter) ToUTF8(text string) string {
	return c.Convert(text, "utf-8", "")
}

func (c Converter) log() mlog.Log {
	if c.Log == nil {
		return pkglog
	}
	return mlog.New("charset", c.Log)
}

// Convert converts text from charset source to charset target. Source can be
// empty. If the target cannot be resolved, text is returned unchanged.
//
// Text declared as UTF-8 but not valid UTF-8 is treated as having an unknown
// charset, so mislabeled mail can still be recovered by the Guesser.
func (c Converter) Convert(text, target, source string) string {
	dst, ok := Resolve(target)
	if !ok {
		c.log().Debug("unknown target charset, not converting", slog.String("target", target))
		metrics.CharsetConvertInc("unresolved")
		return text
	}
	if source != "" {
		if src, ok := Resolve(source); !ok {
			c.log().Debug("unknown source charset", slog.String("source", source))
		} else if src.IsUTF8() && !utf8.ValidString(text) {
			c.log().Debug("text not valid for declared charset", slog.String("source", src.Name))
		} else if src.Name == dst.Name {
			metrics.CharsetConvertInc("same")
			return text
		} else if s, err := Transcode(text, src, dst); err != nil {
			c.log().Debugx("transcoding text, trying other encodings", err, slog.String("source", src.Name), slog.String("target", dst.Name))
		} else {
			metrics.CharsetConvertInc("direct")
			return s
		}
	}

	if utf8.ValidString(text) {
		metrics.CharsetConvertInc("utf8")
		return text
	}

	if c.Guesser != nil {
		if src, ok := c.Guesser.Guess(text); ok {
			if s, err := Transcode(text, src, dst); err == nil {
				c.log().Debug("converted with guessed charset", slog.String("guessed", src.Name), slog.String("target", dst.Name))
				metrics.CharsetConvertInc("guessed")
				return s
			}
		}
	}

	s, err := Transcode(text, DefaultEncoding, dst)
	if err != nil {
		c.log().Debugx("converting from default charset", err, slog.String("target", dst.Name))
		metrics.CharsetConvertInc("failed")
		return text
	}
	metrics.CharsetConvertInc("fallback")
	return s
}
