package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/ligas/internal/gemini"
	"github.com/charmbracelet/ligas/internal/google"
	"github.com/charmbracelet/ligas/internal/league"
	"github.com/charmbracelet/ligas/internal/provider"
)

// newClient returns the provider configured by cfg.API.
func newClient(ctx context.Context, cfg *Config) (provider.Client, error) {
	if cfg.APIKey == nil {
		return nil, ligasError{
			err: newUserErrorf(
				"You can grab one at %s.",
				stderrStyles().Link.Render("https://aistudio.google.com/apikey"),
			),
			reason: fmt.Sprintf(
				"%s %s",
				stderrStyles().InlineCode.Render(cfg.APIKeyEnv),
				"environment variable is required.",
			),
		}
	}

	switch cfg.API {
	case apiGemini:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.apiKey(),
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, ligasError{err, "Could not set up the Gemini client."}
		}
		return client, nil
	case apiGoogle:
		gcfg := google.DefaultConfig(cfg.apiKey())
		if cfg.BaseURL != "" {
			gcfg.BaseURL = cfg.BaseURL
		}
		return google.New(gcfg), nil
	default:
		return nil, ligasError{
			err: newUserErrorf(
				"Use %s or %s.",
				stderrStyles().InlineCode.Render(apiGemini),
				stderrStyles().InlineCode.Render(apiGoogle),
			),
			reason: fmt.Sprintf("API %s is not supported.", stderrStyles().InlineCode.Render(cfg.API)),
		}
	}
}

// newGenerator wires the configured provider into a league generator.
func newGenerator(ctx context.Context, cfg *Config) (*league.Generator, error) {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return league.New(client, cfg.leagueConfig()), nil
}
