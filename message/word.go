package message

import (
	"io"
	"mime"
	"regexp"
	"strings"

	"github.com/mjl-/mailparse/charset"
)

// Encoded words as in RFC 2047, "=?charset?encoding?text?=". The decoder
// validates further.
var encodedWord = regexp.MustCompile(`=\?[^?\s]+\?[bBqQ]\?[^?\s]*\?=`)

// DecodeWords decodes the RFC 2047 encoded words in text, converting them to
// UTF-8 from their charset with conv. Literal text is kept as is. Whitespace
// between two encoded words is removed. Malformed words, and words with
// charset "default", are kept as is.
func DecodeWords(conv charset.Converter, text string) string {
	if !strings.Contains(text, "=?") {
		return text
	}

	dec := wordDecoder(conv)
	var b strings.Builder
	var prevWord bool
	var last int
	for _, loc := range encodedWord.FindAllStringIndex(text, -1) {
		literal := text[last:loc[0]]
		word := text[loc[0]:loc[1]]
		last = loc[1]

		s, ok := decodeWord(dec, word)
		if !(ok && prevWord && strings.Trim(literal, " \t\r\n") == "") {
			b.WriteString(literal)
		}
		b.WriteString(s)
		prevWord = ok
	}
	b.WriteString(text[last:])
	return b.String()
}

// decodeWord returns the decoded word, or the word itself and false if it
// could not be decoded.
func decodeWord(dec *mime.WordDecoder, word string) (string, bool) {
	cs, _, _ := strings.Cut(word[len("=?"):], "?")
	if strings.EqualFold(cs, "default") {
		return word, false
	}
	s, err := dec.Decode(word)
	if err != nil {
		return word, false
	}
	return s, true
}

// wordDecoder returns a decoder that converts from the charset of a word with
// conv. The RFC 2231 language suffix, as in "utf-8*en", is ignored.
func wordDecoder(conv charset.Converter) *mime.WordDecoder {
	return &mime.WordDecoder{
		CharsetReader: func(cs string, r io.Reader) (io.Reader, error) {
			buf, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			cs, _, _ = strings.Cut(cs, "*")
			return strings.NewReader(conv.Convert(string(buf), "utf-8", cs)), nil
		},
	}
}
