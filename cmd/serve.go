package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/serenity-circle/serenity/internal/affirm"
	"github.com/serenity-circle/serenity/internal/auth"
	"github.com/serenity-circle/serenity/internal/chat"
	"github.com/serenity-circle/serenity/internal/llm"
	"github.com/serenity-circle/serenity/internal/server"
	"github.com/serenity-circle/serenity/internal/wellness"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and live chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SeedDefaults(ctx, wellness.GroupSeeds()); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}

		// Affirmations work without a model; they fall back to the built-in list.
		provider, err := llm.New(ctx, cfg.LLM, st.EventRepo(), logger)
		switch {
		case errors.Is(err, llm.ErrDisabled):
			logger.Info("LLM provider disabled, using built-in affirmations")
		case err != nil:
			logger.Warn("LLM provider unavailable, using built-in affirmations", zap.Error(err))
		default:
			logger.Info("LLM provider ready", zap.String("provider", provider.Name()), zap.String("model", provider.Model()))
		}

		hub := chat.NewHub(logger.Named("chat"))
		svc := wellness.New(st, wellness.Options{
			Publisher:    hub,
			Logger:       logger.Named("wellness"),
			HistoryLimit: cfg.Chat.HistoryLimit,
		})
		srv := server.New(cfg.Server, cfg.Session, server.Deps{
			Service:      svc,
			Sessions:     auth.NewSessions(cfg.Session.Capacity, cfg.Session.TTL),
			Hub:          hub,
			Affirmations: affirm.New(provider, logger.Named("affirm")),
			Logger:       logger.Named("http"),
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return hub.Run(gctx) })
		g.Go(func() error { return srv.Run(gctx) })
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides server.port)")
}
