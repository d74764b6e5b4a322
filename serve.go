package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/ligas/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the league generator form over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen, err := newGenerator(ctx, cfg)
			if err != nil {
				return err
			}
			logger.Debug("generator ready", "api", cfg.API, "model", gen.Config().Model)

			srv, err := web.New(gen, cfg.webConfig(), logger.WithPrefix("web"))
			if err != nil {
				return ligasError{err, "Could not set up the web server."}
			}
			if err := srv.Run(ctx); err != nil {
				return ligasError{err, "The web server stopped unexpectedly."}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, stdoutStyles().FlagDesc.Render(help["addr"]))
	flags.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, stdoutStyles().FlagDesc.Render(help["rate-limit"]))
	flags.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, stdoutStyles().FlagDesc.Render(help["rate-burst"]))
	return cmd
}
