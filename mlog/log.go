// Package mlog provides logging with log levels and attributes, on top of log/slog.
//
// Each log level has a function to log with and without error. The functions
// take a varargs list of slog attributes. Variable data should be in
// attributes. Logging strings themselves should be constant, for easier log
// processing (e.g. building metrics based on log messages).
//
// The log levels can be configured per originating package, e.g. message,
// charset, http. The configuration is application-global, so each Log instance
// uses the same log levels.
//
// Print* should be used for lines that always should be printed, regardless of
// configured log levels. Useful for startup logging and subcommands.
package mlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelPrint = slog.Level(12) // Printed regardless of configured log level.
	LevelFatal = slog.Level(10) // Printed regardless of configured log level.
	LevelError = slog.LevelError
	LevelInfo  = slog.LevelInfo
	LevelDebug = slog.LevelDebug
	LevelTrace = slog.Level(-8)
)

var LevelStrings = map[slog.Level]string{
	LevelPrint: "print",
	LevelFatal: "fatal",
	LevelError: "error",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
}

var Levels = map[string]slog.Level{
	"print": LevelPrint,
	"fatal": LevelFatal,
	"error": LevelError,
	"info":  LevelInfo,
	"debug": LevelDebug,
	"trace": LevelTrace,
}

// Holds a map[string]slog.Level, mapping a package (field pkg in logs) to a
// log level. The empty string is the default/fallback log level.
var config atomic.Pointer[map[string]slog.Level]

func init() {
	SetConfig(map[string]slog.Level{"": LevelError})
}

// SetConfig atomically sets the new log levels used by all Log instances.
func SetConfig(c map[string]slog.Level) {
	config.Store(&c)
}

func pkgLevel(pkg string) slog.Level {
	c := *config.Load()
	if l, ok := c[pkg]; ok {
		return l
	}
	if l, ok := c[""]; ok {
		return l
	}
	return LevelError
}

// Output is where loggers created with a nil parent logger write to.
var Output io.Writer = os.Stderr

type key string

// CidKey can be used with context.WithValue to store a "cid" in a context, for logging.
var CidKey key = "cid"

// Log wraps a slog.Logger with level-specific functions.
type Log struct {
	*slog.Logger
}

// New returns a Log for package pkg. If elog is nil, a new logger writing to
// Output is created. If elog was created by this package, its package is
// replaced. Otherwise a "pkg" attribute is added to elog.
func New(pkg string, elog *slog.Logger) Log {
	if elog == nil {
		base := slog.NewTextHandler(Output, &slog.HandlerOptions{
			Level:       LevelTrace,
			ReplaceAttr: replaceLevel,
		})
		return Log{slog.New(newHandler(pkg, base))}
	}
	if h, ok := elog.Handler().(*handler); ok {
		return Log{slog.New(newHandler(pkg, h.base))}
	}
	return Log{elog.With(slog.String("pkg", pkg))}
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok {
		if s, ok := LevelStrings[l]; ok {
			return slog.String(slog.LevelKey, s)
		}
	}
	return a
}

// handler filters records on the level configured for its package.
type handler struct {
	pkg  string
	base slog.Handler // Without pkg attribute.
	next slog.Handler
}

func newHandler(pkg string, base slog.Handler) *handler {
	return &handler{pkg, base, base.WithAttrs([]slog.Attr{slog.String("pkg", pkg)})}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= pkgLevel(h.pkg)
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{h.pkg, h.base, h.next.WithAttrs(attrs)}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{h.pkg, h.base, h.next.WithGroup(name)}
}

// WithCid adds a "cid" attribute.
func (l Log) WithCid(cid int64) Log {
	return Log{l.Logger.With(slog.Int64("cid", cid))}
}

// WithContext adds cid from context, if present. At the start of a function
// handling a request, a variable "log" is often instantiated from a
// package-level variable "pkglog", with WithContext for its cid.
func (l Log) WithContext(ctx context.Context) Log {
	cid, ok := ctx.Value(CidKey).(int64)
	if !ok {
		return l
	}
	return l.WithCid(cid)
}

// With returns a Log that adds attrs to each logged line.
func (l Log) With(attrs ...slog.Attr) Log {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return Log{l.Logger.With(args...)}
}

func (l Log) Print(msg string, attrs ...slog.Attr) { l.logx(LevelPrint, nil, msg, attrs...) }
func (l Log) Printx(msg string, err error, attrs ...slog.Attr) {
	l.logx(LevelPrint, err, msg, attrs...)
}

func (l Log) Fatal(msg string, attrs ...slog.Attr) { l.Fatalx(msg, nil, attrs...) }
func (l Log) Fatalx(msg string, err error, attrs ...slog.Attr) {
	l.logx(LevelFatal, err, msg, attrs...)
	os.Exit(1)
}

func (l Log) Error(msg string, attrs ...slog.Attr) { l.logx(LevelError, nil, msg, attrs...) }
func (l Log) Errorx(msg string, err error, attrs ...slog.Attr) {
	l.logx(LevelError, err, msg, attrs...)
}

func (l Log) Info(msg string, attrs ...slog.Attr) { l.logx(LevelInfo, nil, msg, attrs...) }
func (l Log) Infox(msg string, err error, attrs ...slog.Attr) {
	l.logx(LevelInfo, err, msg, attrs...)
}

func (l Log) Debug(msg string, attrs ...slog.Attr) { l.logx(LevelDebug, nil, msg, attrs...) }
func (l Log) Debugx(msg string, err error, attrs ...slog.Attr) {
	l.logx(LevelDebug, err, msg, attrs...)
}

func (l Log) Trace(msg string, attrs ...slog.Attr) { l.logx(LevelTrace, nil, msg, attrs...) }

func (l Log) logx(level slog.Level, err error, msg string, attrs ...slog.Attr) {
	ctx := context.Background()
	if !l.Logger.Enabled(ctx, level) {
		return
	}
	if err != nil {
		attrs = append([]slog.Attr{slog.Any("err", err)}, attrs...)
	}
	l.Logger.LogAttrs(ctx, level, msg, attrs...)
}
