// Package http provides the HTTP webhook for parsing messages, and serves
// prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mjl-/mailparse/config"
	"github.com/mjl-/mailparse/mailio"
	"github.com/mjl-/mailparse/message"
	"github.com/mjl-/mailparse/metrics"
	"github.com/mjl-/mailparse/mlog"
)

var pkglog = mlog.New("http", nil)

// Response is the JSON body returned for POST /parse.
type Response struct {
	Message *message.Parsed `json:"message"`

	// Parts whose body could not be decoded. The parts are still in Message, with
	// their raw body. Nil if all parts were decoded.
	Errors []string `json:"errors,omitempty"`
}

// statusWriter remembers the status code written, for metrics and logging.
type statusWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	if w.StatusCode == 0 {
		w.StatusCode = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(buf []byte) (int, error) {
	if w.StatusCode == 0 {
		w.StatusCode = http.StatusOK
	}
	return w.ResponseWriter.Write(buf)
}

type webhook struct {
	parser  message.Parser
	maxSize int64
}

// Handler returns a handler serving POST /parse and GET /metrics.
//
// The raw message is the request body. Query parameter "utf8" (a boolean)
// overrides whether text is converted to UTF-8.
func Handler(conf config.Static, elog *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/parse", webhook{conf.Parser(elog), conf.MaxMessageSize})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Server returns an HTTP server for the webhook, listening on the configured
// address once started.
func Server(conf config.Static, elog *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              conf.Listen,
		Handler:           Handler(conf, elog),
		ReadHeaderTimeout: 30 * time.Second,
		ErrorLog:          slog.NewLogLogger(mlog.New("net/http", elog).Logger.Handler(), mlog.LevelInfo),
	}
}

func (h webhook) ServeHTTP(xw http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := context.WithValue(r.Context(), mlog.CidKey, Cid())
	r = r.WithContext(ctx)
	log := pkglog.WithContext(ctx)

	w := &statusWriter{ResponseWriter: xw}
	var rerr error
	defer func() {
		x := recover()
		if x != nil {
			log.Error("unhandled panic in webhook", slog.Any("x", x))
			debug.PrintStack()
			metrics.PanicInc("http")
			rerr = fmt.Errorf("panic: %v", x)
			if w.StatusCode == 0 {
				http.Error(w, "500 - internal server error", http.StatusInternalServerError)
			}
		}
		metrics.HTTPServerObserve(ctx, "parse", r.Method, w.StatusCode, rerr, start)
	}()

	if r.Method != "POST" {
		w.Header().Set("Allow", "POST")
		http.Error(w, "405 - method not allowed - use POST", http.StatusMethodNotAllowed)
		return
	}

	parser := h.parser
	if s := r.URL.Query().Get("utf8"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "400 - bad request - invalid value for utf8", http.StatusBadRequest)
			return
		}
		parser.ConvertUTF8 = v
	}

	raw, err := mailio.ReadMessage(r.Body, h.maxSize)
	if errors.Is(err, mailio.ErrLimit) {
		log.Debug("message too large", slog.Int64("maxsize", h.maxSize))
		http.Error(w, "413 - request entity too large", http.StatusRequestEntityTooLarge)
		return
	} else if err != nil {
		log.Debugx("reading request body", err)
		rerr = err
		http.Error(w, "400 - bad request - reading message", http.StatusBadRequest)
		return
	}

	parser.Log = log.Logger
	p, err := parser.Parse(raw)
	resp := Response{Message: p}
	for _, perr := range unjoin(err) {
		resp.Errors = append(resp.Errors, perr.Error())
	}
	log.Debug("parsed message", slog.Int("size", len(raw)), slog.Int("errors", len(resp.Errors)))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		log.Infox("writing response", err)
		rerr = err
	}
}

// unjoin returns the errors wrapped by an errors.Join result.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if x, ok := err.(interface{ Unwrap() []error }); ok {
		return x.Unwrap()
	}
	return []error{err}
}
