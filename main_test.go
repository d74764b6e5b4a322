package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ligas/internal/league"
	"github.com/stretchr/testify/require"
)

func TestIsCompletionCmd(t *testing.T) {
	for args, is := range map[string]bool{
		"":                                     false,
		"something":                            false,
		"something something":                  false,
		"completion for my bash script how to": false,
		"completion bash how to":               false,
		"completion":                           false,
		"completion -h":                        true,
		"completion --help":                    true,
		"completion help":                      true,
		"completion bash":                      true,
		"completion fish":                      true,
		"completion zsh":                       true,
		"completion powershell":                true,
		"completion bash -h":                   true,
		"completion zsh --help":                true,
		"__complete":                           true,
		"__complete blah blah blah":            true,
	} {
		t.Run(args, func(t *testing.T) {
			vargs := append([]string{"ligas"}, strings.Fields(args)...)
			require.Equal(t, is, isCompletionCmd(vargs), vargs)
		})
	}
}

func TestIsManCmd(t *testing.T) {
	for args, is := range map[string]bool{
		"":                    false,
		"something":           false,
		"something something": false,
		"man is no more":      false,
		"mans":                false,
		"man foo":             false,
		"man":                 true,
		"man -h":              true,
		"man --help":          true,
	} {
		t.Run(args, func(t *testing.T) {
			vargs := append([]string{"ligas"}, strings.Fields(args)...)
			require.Equal(t, is, isManCmd(vargs), vargs)
		})
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := defaultConfig()
	cfg.SettingsPath = filepath.Join(t.TempDir(), "ligas.yml")
	cfg.LogLevel = "error"
	return cfg
}

func execute(t *testing.T, cfg *Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootFlags(t *testing.T) {
	cfg := testConfig(t)
	cmd := newRootCmd(&cfg)
	require.NoError(t, cmd.ParseFlags([]string{
		"--api", "google",
		"-m", "gemini-2.5-pro",
		"--temp", "0.2",
		"--max-tokens", "512",
		"--timeout", "1m",
		"--raw", "-q", "-c",
	}))

	require.Equal(t, apiGoogle, cfg.API)
	require.Equal(t, "gemini-2.5-pro", cfg.Model)
	require.InDelta(t, 0.2, cfg.Temperature, 0.0001)
	require.Equal(t, int64(512), cfg.MaxTokens)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.True(t, cfg.Raw)
	require.True(t, cfg.Quiet)
	require.True(t, cfg.Copy)

	lc := cfg.leagueConfig()
	require.Equal(t, "gemini-2.5-pro", lc.Model)
	require.Equal(t, time.Minute, lc.Timeout)
}

func TestServeFlags(t *testing.T) {
	cfg := testConfig(t)
	cmd := newServeCmd(&cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--addr", ":8080", "--rate-limit", "2", "--rate-burst", "4"}))
	wc := cfg.webConfig()
	require.Equal(t, ":8080", wc.Addr)
	require.InDelta(t, 2.0, wc.RateLimit, 0.0001)
	require.Equal(t, 4, wc.RateBurst)
}

func TestUsage(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, &cfg, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")
	require.Contains(t, out, "--model")
	require.Contains(t, out, "--copy")
	require.Contains(t, out, "serve")
	require.Contains(t, out, "probe")
	require.NotContains(t, out, "  man ")
	require.Contains(t, out, "Example:")
}

func TestDirs(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, &cfg, "--dirs")
	require.NoError(t, err)
	require.Equal(t, "Configuration: "+filepath.Dir(cfg.SettingsPath)+"\n", out)
}

func TestMan(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(t, &cfg, "man")
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(out), "ligas")
	require.Contains(t, out, ".TH")
}

func TestFlagError(t *testing.T) {
	cfg := testConfig(t)
	_, err := execute(t, &cfg, "--nope")
	ferr := flagParseError{}
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, "--nope", ferr.Flag())

	var out bytes.Buffer
	handleError(&out, err)
	require.Contains(t, out.String(), "ERROR")
	require.Contains(t, out.String(), "--nope")
	require.Contains(t, out.String(), "ligas -h")
}

func TestHandleError(t *testing.T) {
	var out bytes.Buffer
	handleError(&out, ligasError{errors.New("API key not valid"), "Invalid Gemini API key."})
	require.Contains(t, out.String(), "ERROR")
	require.Contains(t, out.String(), "Invalid Gemini API key.")
	require.Contains(t, out.String(), "API key not valid")
}

func TestNewClient(t *testing.T) {
	key := "AIzaTest"

	t.Run("missing key", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := newClient(context.Background(), &cfg)
		lerr := ligasError{}
		require.ErrorAs(t, err, &lerr)
		require.Contains(t, lerr.Reason(), "GEMINI_API_KEY")
	})

	t.Run("unknown api", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.APIKey = &key
		cfg.API = "openai"
		_, err := newClient(context.Background(), &cfg)
		lerr := ligasError{}
		require.ErrorAs(t, err, &lerr)
		require.Contains(t, lerr.Reason(), "openai")
	})

	for _, api := range []string{apiGemini, apiGoogle} {
		t.Run(api, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.APIKey = &key
			cfg.API = api
			client, err := newClient(context.Background(), &cfg)
			require.NoError(t, err)
			require.NotNil(t, client)
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"**Nombre de la liga:** Liga Costera"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	key := "AIzaTest"
	cfg := testConfig(t)
	cfg.APIKey = &key
	cfg.API = apiGoogle
	cfg.BaseURL = srv.URL

	out, err := execute(t, &cfg, "--raw", "--quiet", "Liga de fútbol con 8 equipos")
	require.NoError(t, err)
	require.Equal(t, "**Nombre de la liga:** Liga Costera\n", out)
}

func TestGenerateCommandFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	t.Cleanup(srv.Close)

	key := "AIzaTest"
	cfg := testConfig(t)
	cfg.APIKey = &key
	cfg.API = apiGoogle
	cfg.BaseURL = srv.URL

	_, err := execute(t, &cfg, "--raw", "--quiet", "Torneo de ajedrez")
	lerr := ligasError{}
	require.ErrorAs(t, err, &lerr)
	require.Contains(t, lerr.Error(), "Quota exceeded")
	require.NotEmpty(t, lerr.Reason())
}

func TestRandomExample(t *testing.T) {
	desc := randomExample()
	require.Contains(t, examples, desc)
	for _, code := range examples {
		require.Contains(t, code, "ligas")
	}
	require.Contains(t, cheapHighlighting(makeStyles(stdoutRenderer()), "ligas probe --mask"), "--mask")
}

func TestDescriptionOptions(t *testing.T) {
	opts := descriptionOptions()
	require.Len(t, opts, 11)
	require.Equal(t, customDescription, opts[0].Value)
	require.Equal(t, "Dragones, Tigres, Halcones, Lobos", opts[1].Value)
}

func TestGenerateCommandArgs(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got = append(got, body.Contents[0].Parts[0].Text)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	key := "AIzaTest"
	cfg := testConfig(t)
	cfg.APIKey = &key
	cfg.API = apiGoogle
	cfg.BaseURL = srv.URL

	_, err := execute(t, &cfg, "--raw", "--quiet", "Liga", "de", "fútbol")
	require.NoError(t, err)
	require.Equal(t, []string{"Liga de fútbol"}, got)
}

func TestProgramError(t *testing.T) {
	require.NoError(t, programError(nil))

	for _, err := range []error{tea.ErrInterrupted, tea.ErrProgramKilled} {
		t.Run(err.Error(), func(t *testing.T) {
			perr := programError(err)
			require.True(t, errCanceled(perr))
			lerr := ligasError{}
			require.ErrorAs(t, perr, &lerr)
			require.Equal(t, "Generation canceled.", lerr.Reason())
		})
	}

	perr := programError(errors.New("no tty"))
	require.False(t, errCanceled(perr))
	lerr := ligasError{}
	require.ErrorAs(t, perr, &lerr)
	require.Equal(t, "Couldn't start Bubble Tea program.", lerr.Reason())
}

func TestMissingNotice(t *testing.T) {
	notice := missingNotice(makeStyles(stdoutRenderer()), league.Fields[:2])
	require.Contains(t, notice, "La respuesta no incluye:")
	require.Contains(t, notice, league.Fields[0].Name+", "+league.Fields[1].Name)
}
