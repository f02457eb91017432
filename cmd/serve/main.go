package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"pdfdigest/internal/config"
	"pdfdigest/internal/export"
	"pdfdigest/internal/pipeline"
	"pdfdigest/internal/store"
	"pdfdigest/internal/web"
	"syscall"
	"time"
)

var (
	app  = kingpin.New("serve", "serve the pdf summarizer web interface")
	args = struct {
		config   *string
		addr     *string
		db       *string
		theme    *string
		font     *string
		logLevel *string
	}{
		config:   app.Flag("config", "TOML configuration file").Short('c').Envar("PDFDIGEST_CONFIG").String(),
		addr:     app.Flag("addr", "listen address").Short('a').Envar("PDFDIGEST_ADDR").String(),
		db:       app.Flag("db", "sqlite database path").Envar("PDFDIGEST_DB").String(),
		theme:    app.Flag("theme", "default theme").Enum(web.ThemeNames()...),
		font:     app.Flag("font", "TrueType font for word clouds").Envar("PDFDIGEST_FONT").String(),
		logLevel: app.Flag("log-level", "debug, info, warn or error").Default("info").String(),
	}
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	level, err := logrus.ParseLevel(*args.logLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*args.config)
	if err != nil {
		logrus.Fatal(err)
	}
	if *args.addr != "" {
		cfg.Server.Addr = *args.addr
	}
	if *args.db != "" {
		cfg.Server.DBPath = *args.db
	}
	if *args.theme != "" {
		cfg.Server.Theme = *args.theme
	}
	if *args.font != "" {
		cfg.Export.FontPath = *args.font
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	st, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		_ = st.Close()
	}()

	srv := web.NewServer(p, st, web.Config{
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		RequestTimeout: cfg.Server.RequestTimeout.Duration,
		Theme:          cfg.Server.Theme,
		Cloud: export.CloudOptions{
			FontPath: cfg.Export.FontPath,
			Width:    cfg.Export.CloudWidth,
			Height:   cfg.Export.CloudHeight,
		},
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// uploads may run for the whole request timeout
	grace := cfg.Server.RequestTimeout.Duration + 10*time.Second
	if err := serve(ctx, httpServer, ln, grace); err != nil {
		logrus.Error(err)
	}
}

// serve runs srv on ln until ctx is done, then waits up to grace for in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	logrus.Infof("listening on %s", ln.Addr())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdown; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logrus.Info("server stopped")
	return nil
}
