package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mjl-/sconf"

	"github.com/mjl-/mailparse/charset"
	"github.com/mjl-/mailparse/message"
	"github.com/mjl-/mailparse/mlog"
)

// DefaultMaxMsgSize is the maximum size of a message accepted for parsing, in
// bytes.
const DefaultMaxMsgSize = 100 * 1024 * 1024

// DefaultListen is the address the webhook listens on if not configured.
const DefaultListen = "localhost:8025"

// ErrConfig is returned for invalid configuration files.
var ErrConfig = errors.New("invalid config")

// Static is the parsed form of the mailparse.conf configuration file.
type Static struct {
	LogLevel         string            `sconf-doc:"NOTE: This config file is in 'sconf' format. Indent with tabs. Comments must be on their own line, they don't end a line. Do not escape or quote strings. Details: https://pkg.go.dev/github.com/mjl-/sconf.\n\n\nDefault log level, one of: error, info, debug, trace."`
	PackageLogLevels map[string]string `sconf:"optional" sconf-doc:"Overrides of log level per package (e.g. message, charset, http, metrics)."`
	Listen           string            `sconf:"optional" sconf-doc:"Address for the HTTP webhook, with POST /parse and GET /metrics. Default: localhost:8025."`
	MaxMessageSize   int64             `sconf:"optional" sconf-doc:"Maximum size of a message in bytes, for the webhook and the parse command. Larger messages are rejected before parsing. Default: 104857600 (100MB)."`
	ConvertUTF8      bool              `sconf:"optional" sconf-doc:"Convert all text in parsed messages to UTF-8, including text parts, which then get encoding utf-8."`
	CharsetGuesser   string            `sconf:"optional" sconf-doc:"How to guess the charset of text without known charset that is not valid UTF-8. One of: cyrillic (first charset that results in Cyrillic letters, for mostly Cyrillic mail), chardet (statistical detection), chain (chardet, then cyrillic), none (read as UTF-8, replacing invalid bytes). Default: cyrillic."`
	SniffHTMLCharset bool              `sconf:"optional" sconf-doc:"For text/html parts without charset in their Content-Type header, use the charset from a meta element in the HTML."`

	Log     map[string]slog.Level `sconf:"-" json:"-"`
	Guesser charset.Guesser       `sconf:"-" json:"-"`
}

// Default returns a prepared config with default values, for use without
// config file.
func Default() Static {
	c := Static{LogLevel: "error"}
	if err := c.Prepare(); err != nil {
		panic(err)
	}
	return c
}

// Load reads and prepares the config file at path p.
func Load(p string) (Static, error) {
	f, err := os.Open(p)
	if err != nil {
		return Static{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Static{}, fmt.Errorf("parsing %s: %w", p, err)
	}
	return c, nil
}

// Parse parses and prepares a config from r.
func Parse(r io.Reader) (Static, error) {
	var c Static
	if err := sconf.Parse(r, &c); err != nil {
		return Static{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := c.Prepare(); err != nil {
		return Static{}, err
	}
	return c, nil
}

// Prepare checks the config, fills in defaults and sets the derived fields.
// All problems are returned, joined, each wrapping ErrConfig.
func (c *Static) Prepare() error {
	var errs []error
	addErrorf := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...)))
	}

	c.Log = map[string]slog.Level{}
	if logLevel, ok := mlog.Levels[c.LogLevel]; ok {
		c.Log[""] = logLevel
	} else {
		addErrorf("invalid log level %q", c.LogLevel)
	}
	for pkg, s := range c.PackageLogLevels {
		if logLevel, ok := mlog.Levels[s]; ok {
			c.Log[pkg] = logLevel
		} else {
			addErrorf("invalid package log level %q", s)
		}
	}

	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.MaxMessageSize < 0 {
		addErrorf("max message size must be positive, got %d", c.MaxMessageSize)
	} else if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMsgSize
	}

	g, err := charset.ParseGuesser(c.CharsetGuesser)
	if err != nil {
		addErrorf("%v", err)
	}
	c.Guesser = g

	return errors.Join(errs...)
}

// Parser returns a message parser with the configured charset handling.
func (c Static) Parser(elog *slog.Logger) message.Parser {
	return message.Parser{
		Log:              elog,
		Converter:        charset.Converter{Log: elog, Guesser: c.Guesser},
		ConvertUTF8:      c.ConvertUTF8,
		SniffHTMLCharset: c.SniffHTMLCharset,
	}
}
