package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-syntrophic/internal/config"
	"github.com/goliatone/go-syntrophic/internal/site"
	"github.com/goliatone/go-syntrophic/pkg/notify"
	htmlrenderer "github.com/goliatone/go-syntrophic/pkg/renderers/html"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site, the onboarding wizard and the signup API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Addr = addr
			}
			handler, err := buildSite(a.cfg, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", a.cfg.Addr, err)
			}
			return serveHTTP(ctx, ln, handler, a.cfg.ShutdownGrace, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SYNTROPHIC_ADDR)")
	return cmd
}

func buildSite(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return nil, err
	}
	composer, err := notify.NewComposer(
		notify.WithSender(cfg.MailFrom),
		notify.WithRecipients(cfg.MailTo...),
	)
	if err != nil {
		return nil, err
	}
	themeCfg, err := htmlrenderer.ResolveTheme(htmlrenderer.DefaultManifest(), cfg.ThemeVariant)
	if err != nil {
		return nil, err
	}
	pages, err := htmlrenderer.New(htmlrenderer.WithTheme(themeCfg))
	if err != nil {
		return nil, err
	}

	srv, err := site.New(mailer,
		site.WithRenderer(pages),
		site.WithComposer(composer),
		site.WithThresholds(cfg.Thresholds()),
		site.WithSkillPath(cfg.SkillPath),
		site.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return srv.Handler()
}

func newMailer(cfg config.Config, logger *zap.Logger) (notify.Mailer, error) {
	switch cfg.MailDriver {
	case config.MailDriverLog:
		return notify.NewLogMailer(logger.Named("mail")), nil
	case config.MailDriverResend:
		return notify.NewResendMailer(cfg.ResendAPIKey)
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
}

// serveHTTP serves on ln until ctx is done, then shuts down within grace.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("grace", grace))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
