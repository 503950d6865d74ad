package message

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mjl-/mailparse/charset"
	"github.com/mjl-/mailparse/metrics"
	"github.com/mjl-/mailparse/mlog"
)

var pkglog = mlog.New("message", nil)

// ContentBlock is a decoded text part of a message, e.g. text/plain or text/html.
type ContentBlock struct {
	MimeType *string `json:"mimeType"` // Lower case.
	Encoding *string `json:"encoding"` // Charset of Content, lower case. "utf-8" after conversion.
	Content  string  `json:"content"`
}

// Attachment is a decoded attachment or embedded (inline, referenced by
// Content-ID) part.
type Attachment struct {
	MimeType *string `json:"mimeType"`
	Name     *string `json:"name"`
	ID       *string `json:"id"` // Content-ID without <>. Always set for embeds.
	Content  []byte  `json:"content"`
}

// Parsed is the result of parsing a message. Absent values are nil.
type Parsed struct {
	Received     Received       `json:"received"` // First Received header, the most recent hop.
	DeliveryDate *int64         `json:"deliveryDate"`
	ReturnPath   string         `json:"returnPath"`
	Priority     *int           `json:"priority"` // 1 (highest) to 5.
	Date         *int64         `json:"date"`
	Subject      string         `json:"subject"`
	To           []Address      `json:"to"`
	From         Address        `json:"from"`
	ReplyTo      []Address      `json:"replyTo"`
	CC           []Address      `json:"cc"`
	BCC          []Address      `json:"bcc"`
	Content      []ContentBlock `json:"content"`
	Attachments  []Attachment   `json:"attachments"`
	Embeds       []Attachment   `json:"embeds"`
	Headers      Headers        `json:"headers"` // Top-level headers.
}

// PartError is a part whose body could not be decoded. The part is still in the
// parsed message, with its raw body as content.
type PartError struct {
	Path string // As in Part.PathString, empty for a message without multipart.
	Err  error
}

func (e *PartError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("message body: %v", e.Err)
	}
	return fmt.Sprintf("part %s: %v", e.Path, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// Parser parses messages. The zero value parses without charset guessing and
// without conversion to UTF-8.
type Parser struct {
	Log       *slog.Logger
	Converter charset.Converter

	// Convert all text to UTF-8, including content blocks, which then get
	// encoding "utf-8".
	ConvertUTF8 bool

	// For text/html parts without charset in their Content-Type, use the charset
	// from a <meta> element in the HTML.
	SniffHTMLCharset bool
}

// Parse parses raw with the default converter.
func Parse(elog *slog.Logger, raw []byte, convertUTF8 bool) (*Parsed, error) {
	p := Parser{
		Log:         elog,
		Converter:   charset.NewConverter(elog),
		ConvertUTF8: convertUTF8,
	}
	return p.Parse(raw)
}

// Parse parses a message. A non-nil Parsed is always returned. The error, if
// any, is a join of *PartError for each part that could not be decoded.
func (p Parser) Parse(raw []byte) (rp *Parsed, rerr error) {
	log := pkglog
	if p.Log != nil {
		log = mlog.New("message", p.Log)
	}
	start := time.Now()
	defer func() {
		result := "ok"
		if rerr != nil {
			result = "parterror"
		}
		metrics.ParseObserve(result, start)
	}()

	conv := p.Converter
	toUTF8 := func(s string) string {
		if p.ConvertUTF8 {
			return conv.ToUTF8(s)
		}
		return s
	}
	addr := func(a Address) Address {
		return Address{toUTF8(a.Email), toUTF8(a.Name)}
	}
	addrs := func(value string) []Address {
		l := []Address{}
		for _, a := range ParseAddressList(conv, value) {
			l = append(l, addr(a))
		}
		return l
	}

	text := string(raw)
	header, _ := SplitHeader(text)
	h := ParseHeaders(header)

	pm := &Parsed{
		DeliveryDate: parseDate(h.Get("Delivery-Date")),
		ReturnPath:   toUTF8(ParseAddress(conv, h.Get("Return-Path")).Email),
		Priority:     parsePriority(h.Get("X-Priority")),
		Date:         parseDate(h.Get("Date")),
		Subject:      toUTF8(DecodeWords(conv, h.Get("Subject"))),
		To:           addrs(h.Get("To")),
		From:         addr(ParseAddress(conv, h.Get("From"))),
		ReplyTo:      addrs(h.Get("Reply-To")),
		CC:           addrs(h.Get("Cc")),
		BCC:          addrs(h.Get("Bcc")),
		Content:      []ContentBlock{},
		Attachments:  []Attachment{},
		Embeds:       []Attachment{},
		Headers:      make(Headers, len(h)),
	}
	if v := h.Get("Received"); v != "" {
		r := ParseReceived(v)
		for _, f := range []*string{&r.From, &r.By, &r.Via, &r.With, &r.ID, &r.For} {
			*f = toUTF8(*f)
		}
		pm.Received = r
	}
	for i, hdr := range h {
		pm.Headers[i] = Header{toUTF8(hdr.Name), toUTF8(hdr.Value)}
	}

	_, params := h.GetParams("Content-Type")
	defaultCharset := toUTF8(strings.ToLower(params["charset"]))

	var errs []error
	for _, part := range SplitMessage(text) {
		ct, ctParams := part.Header.GetParams("Content-Type")
		mimeType := strings.ToLower(ct)
		if mimeType == "" && part.Level == 0 {
			mimeType = "text/plain"
		}
		mimeType = toUTF8(mimeType)
		contentID := part.Header.Get("Content-ID")
		disp := ParseDisposition(part.Header.Get("Content-Disposition"))
		filename := headerParam(part.Header, "Content-Disposition", "filename")

		data, err := DecodeBody(part.Header, []byte(part.Body))
		if err != nil {
			log.Debugx("decoding part, keeping raw body", err, slog.String("path", part.PathString()))
			metrics.DecodeErrorInc(ParseTransferEncoding(part.Header.Get("Content-Transfer-Encoding")).String())
			errs = append(errs, &PartError{part.PathString(), err})
		}

		if part.Level >= 1 && (disp == DispositionAttachment || filename != "" || contentID != "") {
			if filename == "" {
				filename = headerParam(part.Header, "Content-Type", "name")
			}
			a := Attachment{
				MimeType: optional(mimeType),
				Name:     optional(toUTF8(DecodeWords(conv, filename))),
				ID:       optional(toUTF8(strings.Trim(contentID, "<>"))),
				Content:  data,
			}
			// An embed without usable id can't be referenced, so we treat it as
			// attachment.
			if a.ID != nil {
				pm.Embeds = append(pm.Embeds, a)
				metrics.PartInc("embed")
			} else {
				pm.Attachments = append(pm.Attachments, a)
				metrics.PartInc("attachment")
			}
			continue
		}

		cs := strings.ToLower(strings.TrimSpace(ctParams["charset"]))
		if cs == "" && p.SniffHTMLCharset && mimeType == "text/html" {
			cs = htmlCharset(data)
			if cs != "" {
				log.Debug("using charset from html meta element", slog.String("path", part.PathString()), slog.String("charset", cs))
			}
		}
		if cs == "" {
			cs = defaultCharset
		}
		b := ContentBlock{optional(mimeType), optional(cs), string(data)}
		if p.ConvertUTF8 {
			b.Content = conv.Convert(b.Content, "utf-8", cs)
			b.Encoding = optional("utf-8")
		}
		pm.Content = append(pm.Content, b)
		metrics.PartInc("content")
	}
	return pm, errors.Join(errs...)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// headerParam returns parameter key of header name. RFC 2231 encoded and
// continued parameters are decoded. If the header can't be parsed as media
// type, the parameter is looked up leniently.
func headerParam(h Headers, name, key string) string {
	v := h.Get(name)
	if v == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(v); err == nil {
		return params[key]
	}
	_, params := h.GetParams(name)
	return params[key]
}

// parsePriority returns the priority from the first character of an
// X-Priority header, e.g. "1 (Highest)", if it is between 1 and 5.
func parsePriority(s string) *int {
	if s == "" || s[0] < '1' || s[0] > '5' {
		return nil
	}
	v := int(s[0] - '0')
	return &v
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC3339,
	time.ANSIC,
	time.UnixDate,
	"Monday, 2 January 2006 15:04:05 -0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// parseDate returns the unix time for an RFC 5322 date, or one of a few other
// common formats, and finally any format dateparse recognizes. Nil is returned
// for unparsable dates.
func parseDate(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := mail.ParseDate(s)
	for _, layout := range dateLayouts {
		if err == nil {
			break
		}
		t, err = time.Parse(layout, s)
	}
	if err != nil {
		t, err = dateparse.ParseAny(s)
	}
	if err != nil {
		return nil
	}
	v := t.Unix()
	return &v
}
