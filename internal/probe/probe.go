// Package probe checks a Gemini credential by listing the available models.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/ligas/internal/google"
)

// Nil is printed in place of values of an unset credential.
const Nil = "<nil>"

// Config is the probe configuration.
type Config struct {
	// APIKey is nil when the credential is not set at all.
	APIKey     *string
	BaseURL    string
	HTTPClient *http.Client
	Mask       bool
}

// Run prints the credential, its type and length, then lists the models
// and prints the status code and raw body. Only transport errors are
// returned, after the credential lines have been written.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	key, typ, length := describe(cfg.APIKey, cfg.Mask)
	fmt.Fprintln(w, "API KEY =", key)
	fmt.Fprintln(w, "TIPO =", typ)
	fmt.Fprintln(w, "LONGITUD =", length)

	gcfg := google.DefaultConfig("")
	if cfg.APIKey != nil {
		gcfg.AuthToken = *cfg.APIKey
	}
	if cfg.BaseURL != "" {
		gcfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		gcfg.HTTPClient = cfg.HTTPClient
	}

	resp, err := google.New(gcfg).ListModels(ctx)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	fmt.Fprintln(w, "STATUS =", resp.StatusCode)
	fmt.Fprintln(w, "RESPUESTA =", string(resp.Body))
	return nil
}

func describe(key *string, mask bool) (value, typ, length string) {
	if key == nil {
		return Nil, Nil, Nil
	}
	value = *key
	if mask {
		value = maskKey(value)
	}
	return value, "string", fmt.Sprint(len(*key))
}

func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + strings.Repeat("*", len(key)-visible*2) + key[len(key)-visible:]
}
