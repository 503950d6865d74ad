package message_test

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mjl-/mailparse/charset"
	"github.com/mjl-/mailparse/message"
)

func ExampleParse() {
	msg := strings.ReplaceAll(`From: =?utf-8?q?Mox_Example?= <mox@Example.org>
To: a@example.org, , B <b@example.org>
Subject: hi
Content-Type: multipart/mixed; boundary=x

--x
Content-Type: text/plain; charset=utf-8

hello
--x
Content-Type: text/plain
Content-Disposition: attachment; filename=note.txt
Content-Transfer-Encoding: base64

bm90ZQ==
--x--
`, "\n", "\r\n")

	p, err := message.Parse(nil, []byte(msg), false)
	if err != nil {
		log.Fatalf("parse: %v", err)
	}
	fmt.Printf("from: %s <%s>\n", p.From.Name, p.From.Email)
	for _, a := range p.To {
		fmt.Printf("to: %q <%s>\n", a.Name, a.Email)
	}
	fmt.Printf("subject: %s\n", p.Subject)
	for _, c := range p.Content {
		fmt.Printf("content: %s %s %q\n", *c.MimeType, *c.Encoding, c.Content)
	}
	for _, a := range p.Attachments {
		fmt.Printf("attachment: %s %s %q\n", *a.MimeType, *a.Name, a.Content)
	}
	// Output:
	// from: Mox Example <mox@example.org>
	// to: "" <a@example.org>
	// to: "B" <b@example.org>
	// subject: hi
	// content: text/plain utf-8 "hello"
	// attachment: text/plain note.txt "note"
}

func ExampleParse_decodeError() {
	msg := "Content-Transfer-Encoding: base64\r\n\r\n*** not base64 ***\r\n"
	p, err := message.Parse(nil, []byte(msg), false)
	var perr *message.PartError
	fmt.Println(errors.Is(err, message.ErrDecode), errors.As(err, &perr))
	fmt.Printf("%q\n", p.Content[0].Content)
	// Output:
	// true true
	// "*** not base64 ***"
}

func ExampleSplitMessage() {
	msg := "Content-Type: multipart/alternative; boundary=b\r\n\r\n--b\r\n\r\none\r\n--b\r\nContent-Type: text/html\r\n\r\n<p>two</p>\r\n--b--\r\n"
	for _, p := range message.SplitMessage(msg) {
		fmt.Printf("%s %q %q\n", p.PathString(), p.Header.Get("Content-Type"), p.Body)
	}
	// Output:
	// 1 "" "one"
	// 2 "text/html" "<p>two</p>"
}

func ExampleDecodeWords() {
	conv := charset.NewConverter(nil)
	fmt.Println(message.DecodeWords(conv, "Re: =?iso-8859-1?q?t=E9st?= =?utf-8?b?4pi6?="))
	// Output: Re: tést☺
}
