package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mjl-/mailparse/config"
	"github.com/mjl-/mailparse/mailio"
	"github.com/mjl-/mailparse/message"
	"github.com/mjl-/mailparse/mlog"
)

func TestCommandHelp(t *testing.T) {
	for _, c := range cmds {
		c.gather()
		if c.help == "" {
			t.Fatalf("command %q without help", strings.Join(c.words, " "))
		}
		if !strings.HasPrefix(c.makeUsage(), "usage: mailparse "+strings.Join(c.words, " ")) {
			t.Fatalf("bad usage for %q: %q", strings.Join(c.words, " "), c.makeUsage())
		}
	}
}

func TestParseReader(t *testing.T) {
	parser := config.Default().Parser(mlog.New("parse", nil).Logger)

	const msg = "Subject: test\r\nContent-Type: multipart/mixed; boundary=x\r\n\r\n--x\r\nContent-Transfer-Encoding: base64\r\n\r\n!!\r\n--x\r\n\r\nhi\r\n--x--\r\n"
	r, err := parseReader(parser, strings.NewReader(msg), 1024)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Message.Subject != "test" || len(r.Message.Content) != 2 {
		t.Fatalf("unexpected parsed message %#v", r.Message)
	}
	if len(r.Errors) != 1 || !strings.HasPrefix(r.Errors[0], "part 1: ") {
		t.Fatalf("got errors %v, expected error for part 1", r.Errors)
	}

	_, err = parseReader(parser, strings.NewReader(msg), 10)
	if !errors.Is(err, mailio.ErrLimit) {
		t.Fatalf("got err %v, expected ErrLimit", err)
	}
}

func TestLoadConfig(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "mailparse.conf")
	defer func() {
		configPath = ""
		loglevel = ""
	}()
	loglevel = "debug"
	conf := loadConfig()
	if conf.Log[""] != mlog.LevelDebug {
		t.Fatalf("log level not overridden: %v", conf.Log)
	}
	var p message.Parser = conf.Parser(nil)
	if p.ConvertUTF8 {
		t.Fatalf("default config converts to utf-8")
	}
}
