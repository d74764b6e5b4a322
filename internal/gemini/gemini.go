// Package gemini implements [provider.Client] on top of the official
// Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/ligas/internal/provider"
	"google.golang.org/genai"
)

var _ provider.Client = &Client{}

// Config represents the configuration for the Gemini SDK client.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client is a client for the Gemini API.
type Client struct {
	client *genai.Client
}

// New creates a new Client with the given configuration.
func New(ctx context.Context, config Config) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions.BaseURL = config.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate implements provider.Client.
func (c *Client) Generate(ctx context.Context, request proto.Request) (string, error) {
	resp, err := c.client.Models.GenerateContent(
		ctx,
		request.Model,
		genai.Text(request.Input),
		fromProtoRequest(request),
	)
	if err != nil {
		return "", convertError(err)
	}
	return toText(resp)
}

func fromProtoRequest(request proto.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		CandidateCount: 1,
	}
	if request.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}
	if request.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*request.Temperature))
	}
	if request.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*request.MaxTokens) //nolint:gosec
	}
	return cfg
}

func toText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", provider.ErrNoContent
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", proto.ErrRefused, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", provider.ErrNoContent
	}
	switch resp.Candidates[0].FinishReason {
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return "", fmt.Errorf("%w: %s", proto.ErrRefused, resp.Candidates[0].FinishReason)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", provider.ErrNoContent
	}
	return text, nil
}

func convertError(err error) error {
	var ae genai.APIError
	if errors.As(err, &ae) {
		return &proto.StatusError{
			StatusCode: ae.Code,
			Status:     ae.Status,
			Message:    ae.Message,
		}
	}
	return err
}
