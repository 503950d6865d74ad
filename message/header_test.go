package message

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func tcheck(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %s", msg, err)
	}
}

func tcompare(t *testing.T, got, exp any) {
	t.Helper()
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("got %q, expected %q", got, exp)
	}
}

func tfail(t *testing.T, err, expErr error) {
	t.Helper()
	if (err == nil) != (expErr == nil) || expErr != nil && !errors.Is(err, expErr) {
		t.Fatalf("got err %v, expected %v", err, expErr)
	}
}

func TestParseHeaders(t *testing.T) {
	check := func(block string, exp Headers) {
		t.Helper()
		tcompare(t, ParseHeaders(block), exp)
	}

	check("", Headers{})
	check("Subject: hi\r\nTo: a@x.com", Headers{{"Subject", "hi"}, {"To", "a@x.com"}})
	check("Subject: hi\nTo: a@x.com\n", Headers{{"Subject", "hi"}, {"To", "a@x.com"}})

	// Folding, with space and tab.
	check("Subject: a long\r\n  subject\r\n\tcontinued\r\nX: y", Headers{{"Subject", "a long subject continued"}, {"X", "y"}})

	// Empty first line of a folded value.
	check("Subject:\r\n text", Headers{{"Subject", "text"}})

	// Duplicates and order preserved.
	check("Received: a\r\nReceived: b\r\nX: 1", Headers{{"Received", "a"}, {"Received", "b"}, {"X", "1"}})

	// Colon only splits once, spaces trimmed.
	check("Date : Mon, 1 Jan 2024 10:00:00 +0000 ", Headers{{"Date", "Mon, 1 Jan 2024 10:00:00 +0000"}})

	// No colon, empty value.
	check("garbage\r\nX: y", Headers{{"garbage", ""}, {"X", "y"}})

	// Continuation before any header is its own entry.
	check(" leading: v\r\nX: y", Headers{{"leading", "v"}, {"X", "y"}})

	// Lines starting with other characters are continuations too.
	check("X-A: 1\r\n-weird\r\n", Headers{{"X-A", "1 -weird"}})
}

func TestHeaderFolding(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9-]{0,15}`).Draw(t, "name")
		first := rapid.StringMatching(`[!-~]([ -~]{0,30}[!-~])?`).Draw(t, "first")
		second := rapid.StringMatching(`[!-~]([ -~]{0,30}[!-~])?`).Draw(t, "second")
		indent := rapid.SampledFrom([]string{" ", "\t", "  ", " \t"}).Draw(t, "indent")
		eol := rapid.SampledFrom([]string{"\r\n", "\n"}).Draw(t, "eol")

		h := ParseHeaders(name + ": " + first + eol + indent + second + eol)
		exp := Headers{{name, first + " " + second}}
		if !reflect.DeepEqual(h, exp) {
			t.Fatalf("got %q, expected %q", h, exp)
		}
	})
}

func TestSplitHeader(t *testing.T) {
	check := func(text, expHeader, expBody string) {
		t.Helper()
		header, body := SplitHeader(text)
		tcompare(t, header, expHeader)
		tcompare(t, body, expBody)
	}

	check("A: b\r\n\r\nbody\r\n", "A: b", "body\r\n")
	check("A: b\n\nbody\n\nmore", "A: b", "body\n\nmore")
	check("A: b\r\nC: d\r\n\r\n", "A: b\r\nC: d", "")
	check("\r\nbody", "", "body")
	check("\nbody", "", "body")
	check("A: b", "A: b", "")
	check("A: b\n\nx\r\n\r\ny", "A: b", "x\r\n\r\ny")
}

func TestGet(t *testing.T) {
	h := Headers{
		{"Content-Type", `multipart/mixed; boundary="abc"; Charset = 'UTF-8' ; bogus; name=""`},
		{"content-type", "text/plain"},
		{"X-Empty", ""},
	}
	tcompare(t, h.Get("CONTENT-TYPE"), h[0].Value)
	tcompare(t, h.Get("x-empty"), "")
	tcompare(t, h.Get("absent"), "")
	tcompare(t, h.Values("Content-Type"), []string{h[0].Value, "text/plain"})
	tcompare(t, h.Values("absent"), []string(nil))

	v, params := h.GetParams("Content-Type")
	tcompare(t, v, "multipart/mixed")
	tcompare(t, params, map[string]string{"boundary": "abc", "charset": "UTF-8", "name": ""})

	v, params = h.GetParams("absent")
	tcompare(t, v, "")
	tcompare(t, params, map[string]string{})
}

func TestHeadersString(t *testing.T) {
	h := Headers{{"Subject", "hi"}, {"To", ""}}
	s := h.String()
	tcompare(t, s, "Subject: hi\r\nTo: \r\n")
	tcompare(t, ParseHeaders(s), h)
	if strings.Contains(Headers{}.String(), "\n") {
		t.Fatalf("empty headers not empty")
	}
}
