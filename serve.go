package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mjl-/mailparse/buildinfo"
	webhook "github.com/mjl-/mailparse/http"
)

func cmdServe(c *cmd) {
	c.help = `Start the HTTP webhook for parsing messages.

POST a raw message to /parse to get the parsed message as JSON. Query parameter
"utf8=true" converts all text to UTF-8. Prometheus metrics are served at
/metrics. The listen address is configured in the config file, field Listen.

On SIGINT or SIGTERM, the server stops accepting connections and waits max 3s
for pending requests.
`
	args := c.Parse()
	if len(args) != 0 {
		c.Usage()
	}

	conf := loadConfig()
	log := c.log
	srv := webhook.Server(conf, log.Logger)

	go func() {
		log.Print("starting webhook", slog.String("version", buildinfo.Version), slog.String("listen", conf.Listen))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalx("webhook server", err)
		}
	}()

	// Graceful shutdown.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	sig := <-sigc
	log.Print("shutting down, waiting max 3s for existing requests", slog.Any("signal", sig))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorx("shutting down webhook", err)
		srv.Close()
	}
}
