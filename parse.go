package main

import (
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/mjl-/mailparse/mailio"
	"github.com/mjl-/mailparse/message"
)

// parseResult is written as JSON for each parsed message.
type parseResult struct {
	File    string          `json:"file,omitempty"`
	Message *message.Parsed `json:"message"`
	Errors  []string        `json:"errors,omitempty"`
}

func cmdParse(c *cmd) {
	c.params = "[-utf8] [-sniffhtml] [-procs n] [file ...]"
	c.help = `Parses messages and prints them as JSON.

Each message is printed as a single line of JSON, with the file name, the
parsed message, and errors for parts that could not be decoded. Without files,
a single message is read from stdin. Files are parsed concurrently, the output
is in the order of the files. Messages larger than MaxMessageSize from the
config file are skipped with an error.

The command exits with status 1 if any file could not be read.
`
	var convertUTF8, sniffHTML bool
	var procs int
	c.flag.BoolVar(&convertUTF8, "utf8", false, "convert all text to utf-8, overrides config file")
	c.flag.BoolVar(&sniffHTML, "sniffhtml", false, "use charset from html meta element for html parts without charset, overrides config file")
	c.flag.IntVar(&procs, "procs", runtime.NumCPU(), "number of messages to parse concurrently")
	args := c.Parse()
	if procs <= 0 {
		c.Usage()
	}

	conf := loadConfig()
	parser := conf.Parser(c.log.Logger)
	parser.ConvertUTF8 = parser.ConvertUTF8 || convertUTF8
	parser.SniffHTMLCharset = parser.SniffHTMLCharset || sniffHTML

	enc := json.NewEncoder(os.Stdout)
	write := func(r parseResult) {
		err := enc.Encode(r)
		xcheckf(err, "writing result")
	}

	if len(args) == 0 {
		r, err := parseReader(parser, os.Stdin, conf.MaxMessageSize)
		xcheckf(err, "parsing message from stdin")
		write(r)
		return
	}

	var failed int
	prepare := func(file string) (parseResult, error) {
		f, err := os.Open(file)
		if err != nil {
			return parseResult{}, err
		}
		defer f.Close()
		r, err := parseReader(parser, f, conf.MaxMessageSize)
		r.File = file
		return r, err
	}
	process := func(file string, r parseResult, err error) error {
		if err != nil {
			c.log.Errorx("parsing message", err, slog.String("file", file))
			failed++
			return nil
		}
		write(r)
		return nil
	}

	wq := mailio.NewWorkQueue(procs, 2*procs, prepare, process)
	defer wq.Stop()
	for _, file := range args {
		err := wq.Add(file)
		xcheckf(err, "processing messages")
	}
	err := wq.Finish()
	xcheckf(err, "processing messages")

	if failed > 0 {
		log.Fatalf("%d of %d messages could not be read", failed, len(args))
	}
}

// parseReader reads a message of at most maxSize bytes from r and parses it.
// Only errors for reading the message are returned, part decoding errors are
// in the result.
func parseReader(parser message.Parser, r io.Reader, maxSize int64) (parseResult, error) {
	raw, err := mailio.ReadMessage(r, maxSize)
	if err != nil {
		return parseResult{}, err
	}
	p, err := parser.Parse(raw)
	result := parseResult{Message: p}
	if x, ok := err.(interface{ Unwrap() []error }); ok {
		for _, perr := range x.Unwrap() {
			result.Errors = append(result.Errors, perr.Error())
		}
	} else if err != nil {
		result.Errors = []string{err.Error()}
	}
	return result, nil
}
