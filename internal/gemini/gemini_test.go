package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/ligas/internal/provider"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(context.Background(), Config{
		APIKey:     "secret",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func testRequest() proto.Request {
	temp := 0.9
	var maxTokens int64 = 2048
	return proto.Request{
		Model:             "gemini-2.5-flash",
		Input:             "Torneo de tenis para 4 jugadores",
		SystemInstruction: "Eres un asistente",
		Temperature:       &temp,
		MaxTokens:         &maxTokens,
	}
}

func TestGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Contains(t, body, "systemInstruction")
			require.Contains(t, body, "generationConfig")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Torneo Abierto"}]},"finishReason":"STOP"}]}`))
		})
		text, err := client.Generate(context.Background(), testRequest())
		require.NoError(t, err)
		require.Equal(t, "Torneo Abierto", text)
	})

	t.Run("quota", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
		})
		_, err := client.Generate(context.Background(), testRequest())
		se := &proto.StatusError{}
		require.ErrorAs(t, err, &se)
		require.Equal(t, http.StatusTooManyRequests, se.StatusCode)
		require.Equal(t, "RESOURCE_EXHAUSTED", se.Status)
	})
}

func TestToText(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		_, err := toText(nil)
		require.ErrorIs(t, err, provider.ErrNoContent)
	})

	t.Run("prompt blocked", func(t *testing.T) {
		_, err := toText(&genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReasonSafety,
			},
		})
		require.ErrorIs(t, err, proto.ErrRefused)
	})

	t.Run("candidate blocked", func(t *testing.T) {
		_, err := toText(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		})
		require.ErrorIs(t, err, proto.ErrRefused)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := toText(&genai.GenerateContentResponse{})
		require.ErrorIs(t, err, provider.ErrNoContent)
	})

	t.Run("text", func(t *testing.T) {
		text, err := toText(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      genai.NewContentFromText("Liga Norte", genai.RoleModel),
				FinishReason: genai.FinishReasonStop,
			}},
		})
		require.NoError(t, err)
		require.Equal(t, "Liga Norte", text)
	})
}

func TestFromProtoRequest(t *testing.T) {
	cfg := fromProtoRequest(testRequest())
	require.NotNil(t, cfg.SystemInstruction)
	require.Equal(t, "Eres un asistente", cfg.SystemInstruction.Parts[0].Text)
	require.InDelta(t, 0.9, float64(*cfg.Temperature), 0.0001)
	require.Equal(t, int32(2048), cfg.MaxOutputTokens)
}
