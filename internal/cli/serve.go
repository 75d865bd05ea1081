package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/desalboard/desalboard/internal/engine/cache"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/server"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	cacheSweepEvery   = time.Minute
)

// NewServeCmd creates the serve command, which runs the JSON HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var (
		listen   string
		cacheTTL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				s.cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("cache-ttl") {
				ttl, parseErr := cache.ParseTTL(cacheTTL)
				if parseErr != nil {
					return fmt.Errorf("--cache-ttl: %w", parseErr)
				}
				s.cfg.Server.CacheTTLSeconds = ttl
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", s.cfg.Server.Listen)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", s.cfg.Server.Listen, err)
			}
			return runServer(ctx, ln, s)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8050)")
	cmd.Flags().StringVar(&cacheTTL, "cache-ttl", "", `chart cache TTL as seconds or a duration like "5m"; 0 disables`)
	return cmd
}

// runServer serves on ln until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, ln net.Listener, s *session) error {
	log := logging.FromContext(ctx)

	api, err := server.New(s.ds, server.Options{
		Defaults:        chartInputsFromConfig(s.cfg),
		CacheTTLSeconds: s.cfg.Server.CacheTTLSeconds,
		CacheMaxEntries: s.cfg.Server.CacheMaxEntries,
		AccessLog:       accessLogWriter{log: log},
		Logger:          *log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           api.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("cache_ttl", cache.FormatDuration(time.Duration(s.cfg.Server.CacheTTLSeconds)*time.Second)).
			Msg("serving comparison API")
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(cacheSweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := api.SweepCache(); n > 0 {
					log.Debug().Int("removed", n).Msg("expired chart cache entries swept")
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// accessLogWriter forwards access log lines to the structured logger.
type accessLogWriter struct {
	log *zerolog.Logger
}

func (w accessLogWriter) Write(p []byte) (int, error) {
	w.log.Info().Str("access", strings.TrimRight(string(p), "\n")).Msg("http request")
	return len(p), nil
}
