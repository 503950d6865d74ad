package message

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/quotedprintable"
	"strings"
)

// ErrDecode is returned for a body that can't be decoded according to its
// Content-Transfer-Encoding.
var ErrDecode = errors.New("decoding body")

// TransferEncoding is a Content-Transfer-Encoding.
type TransferEncoding int

const (
	TEIdentity TransferEncoding = iota // Absent or unrecognized.
	TE7Bit
	TE8Bit
	TEBase64
	TEQuotedPrintable
)

func (te TransferEncoding) String() string {
	switch te {
	case TE7Bit:
		return "7bit"
	case TE8Bit:
		return "8bit"
	case TEBase64:
		return "base64"
	case TEQuotedPrintable:
		return "quoted-printable"
	}
	return "identity"
}

// ParseTransferEncoding parses a Content-Transfer-Encoding value,
// case-insensitively.
func ParseTransferEncoding(s string) TransferEncoding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "7bit":
		return TE7Bit
	case "8bit":
		return TE8Bit
	case "base64":
		return TEBase64
	case "quoted-printable":
		return TEQuotedPrintable
	}
	return TEIdentity
}

// DecodeBody returns raw decoded according to the Content-Transfer-Encoding
// header in h. For base64, line breaks are removed before decoding. 7bit,
// 8bit and unrecognized encodings are returned as is. Errors wrap ErrDecode.
func DecodeBody(h Headers, raw []byte) ([]byte, error) {
	te := ParseTransferEncoding(h.Get("Content-Transfer-Encoding"))
	switch te {
	case TEBase64:
		buf := make([]byte, 0, len(raw))
		for _, c := range raw {
			if c != '\r' && c != '\n' {
				buf = append(buf, c)
			}
		}
		dst := make([]byte, base64.StdEncoding.DecodedLen(len(buf)))
		n, err := base64.StdEncoding.Decode(dst, buf)
		if err != nil {
			return raw, fmt.Errorf("%w: %s: %v", ErrDecode, te, err)
		}
		return dst[:n], nil
	case TEQuotedPrintable:
		buf, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return raw, fmt.Errorf("%w: %s: %v", ErrDecode, te, err)
		}
		return buf, nil
	}
	return raw, nil
}

// Disposition is a Content-Disposition type.
type Disposition int

const (
	DispositionNone Disposition = iota // Absent or unrecognized.
	DispositionInline
	DispositionAttachment
)

// ParseDisposition parses the disposition type from a Content-Disposition
// value, ignoring parameters.
func ParseDisposition(s string) Disposition {
	s, _, _ = strings.Cut(s, ";")
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inline":
		return DispositionInline
	case "attachment":
		return DispositionAttachment
	}
	return DispositionNone
}
