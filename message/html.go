package message

import (
	"bytes"
	"mime"
	"strings"

	"golang.org/x/net/html"
	htmlcharset "golang.org/x/net/html/charset"
)

// htmlCharset returns the charset declared by a <meta charset> or <meta
// http-equiv="content-type"> element before the body of an HTML document, as
// WHATWG encoding name. Empty if none is found.
func htmlCharset(data []byte) string {
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "body":
				return ""
			case "meta":
			default:
				continue
			}
			var cs, content string
			var httpEquiv bool
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				switch string(k) {
				case "charset":
					cs = string(v)
				case "content":
					content = string(v)
				case "http-equiv":
					httpEquiv = strings.EqualFold(string(v), "content-type")
				}
			}
			if cs == "" && httpEquiv {
				if _, params, err := mime.ParseMediaType(content); err == nil {
					cs = params["charset"]
				}
			}
			if cs == "" {
				continue
			}
			if _, name := htmlcharset.Lookup(cs); name != "" {
				return name
			}
		}
	}
}
