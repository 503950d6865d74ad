package message

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestDecodeBody(t *testing.T) {
	check := func(cte, raw, exp string, expErr error) {
		t.Helper()
		h := Headers{{"Content-Transfer-Encoding", cte}}
		buf, err := DecodeBody(h, []byte(raw))
		tfail(t, err, expErr)
		tcompare(t, string(buf), exp)
	}

	check("base64", "aGVs\r\nbG8=", "hello", nil)
	check("BASE64", "aGVs\nbG8=", "hello", nil)
	check("base64", "", "", nil)
	check("base64", "not base64!", "not base64!", ErrDecode)
	check("base64", "aGVsbG8", "aGVsbG8", ErrDecode) // Missing padding.

	check("quoted-printable", "caf=C3=A9 soft=\r\nbreak", "café softbreak", nil)
	check("Quoted-Printable", "a=3Db", "a=b", nil)
	check("quoted-printable", "bad\x01byte", "bad\x01byte", ErrDecode)

	check("7bit", "as is=3D", "as is=3D", nil)
	check("8bit", "caf\xe9", "caf\xe9", nil)
	check("", "aGkK", "aGkK", nil)
	check("x-uuencode", "aGkK", "aGkK", nil)
}

func TestParseTransferEncoding(t *testing.T) {
	tcompare(t, ParseTransferEncoding("Base64"), TEBase64)
	tcompare(t, ParseTransferEncoding(" quoted-printable "), TEQuotedPrintable)
	tcompare(t, ParseTransferEncoding("7BIT"), TE7Bit)
	tcompare(t, ParseTransferEncoding("8bit"), TE8Bit)
	tcompare(t, ParseTransferEncoding("binary"), TEIdentity)
	tcompare(t, ParseTransferEncoding(""), TEIdentity)
	tcompare(t, TEQuotedPrintable.String(), "quoted-printable")
	tcompare(t, TEIdentity.String(), "identity")
}

func TestParseDisposition(t *testing.T) {
	tcompare(t, ParseDisposition(`attachment; filename="a.png"`), DispositionAttachment)
	tcompare(t, ParseDisposition("INLINE"), DispositionInline)
	tcompare(t, ParseDisposition(""), DispositionNone)
	tcompare(t, ParseDisposition("form-data; name=x"), DispositionNone)
}

func TestBase64RoundTrip(t *testing.T) {
	h := Headers{{"Content-Transfer-Encoding", "base64"}}
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		lineLen := rapid.IntRange(4, 76).Draw(t, "linelen")
		eol := rapid.SampledFrom([]string{"\r\n", "\n"}).Draw(t, "eol")

		// Wrap lines like mail writers do.
		enc := base64.StdEncoding.EncodeToString(data)
		var b strings.Builder
		for len(enc) > lineLen {
			b.WriteString(enc[:lineLen] + eol)
			enc = enc[lineLen:]
		}
		b.WriteString(enc)

		buf, err := DecodeBody(h, []byte(b.String()))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(buf, data) {
			t.Fatalf("got %x, expected %x", buf, data)
		}
	})
}
