package main

import (
	"github.com/charmbracelet/ligas/internal/probe"
	"github.com/spf13/cobra"
)

func newProbeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "probe",
		Short:        "Print the API key and list the models it can reach",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logger.Debug("probing", "env", cfg.APIKeyEnv, "base-url", cfg.BaseURL)

			err = probe.Run(cmd.Context(), probe.Config{
				APIKey:  cfg.APIKey,
				BaseURL: cfg.BaseURL,
				Mask:    cfg.Mask,
			}, cmd.OutOrStdout())
			if err != nil {
				return ligasError{err, "Could not reach the Gemini API."}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cfg.Mask, "mask", cfg.Mask, stdoutStyles().FlagDesc.Render(help["mask"]))
	return cmd
}
