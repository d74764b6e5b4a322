// Package google implements [provider.Client] for the Gemini REST API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/ligas/internal/provider"
)

var _ provider.Client = &Client{}

// DefaultBaseURL is the Gemini API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

const apiVersion = "v1beta"

// Config represents the configuration for the Google API client.
type Config struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

// DefaultConfig returns the default configuration for the Google API client.
func DefaultConfig(authToken string) Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		AuthToken:  authToken,
		HTTPClient: &http.Client{},
	}
}

// Part is a datatype containing media that is part of a multi-part Content message.
type Part struct {
	Text string `json:"text,omitempty"`
}

// Content is the base structured datatype containing multi-part content of a message.
type Content struct {
	Parts []Part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

// GenerationConfig are the options for model generation and outputs. Not all parameters are configurable for every model.
type GenerationConfig struct {
	CandidateCount  uint     `json:"candidateCount,omitempty"`
	MaxOutputTokens uint     `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

// MessageCompletionRequest represents the valid parameters and value options for the request.
type MessageCompletionRequest struct {
	Contents          []Content        `json:"contents,omitempty"`
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	GenerationConfig  GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate represents a response candidate generated from the model.
type Candidate struct {
	Content      Content `json:"content,omitempty"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptFeedback is set when the prompt itself was blocked.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// CompletionMessageResponse represents a response to a Google completion message.
type CompletionMessageResponse struct {
	Candidates     []Candidate     `json:"candidates,omitempty"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Client is a client for the Google API.
type Client struct {
	config Config
}

// New creates a new Client with the given configuration.
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	return &Client{config: config}
}

// Generate implements provider.Client.
func (c *Client) Generate(ctx context.Context, request proto.Request) (string, error) {
	req, err := newJSONRequest(ctx, http.MethodPost, c.generateURL(request.Model), fromProtoRequest(request))
	if err != nil {
		return "", err
	}

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	defer resp.Body.Close() //nolint:errcheck

	if isFailureStatusCode(resp) {
		return "", c.handleErrorResp(resp)
	}

	bts, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("google: read response: %w", err)
	}
	var out CompletionMessageResponse
	if err := json.Unmarshal(bts, &out); err != nil {
		return "", fmt.Errorf("google: decode response: %w", err)
	}
	return toText(out)
}

// ModelsResponse is the raw result of a model listing call.
type ModelsResponse struct {
	StatusCode int
	Body       []byte
}

// ListModels issues the model listing GET with the key as a query
// parameter. Any HTTP status is a valid response; only transport errors
// are returned.
func (c *Client) ListModels(ctx context.Context) (ModelsResponse, error) {
	req, err := newJSONRequest(ctx, http.MethodGet, c.modelsURL(), nil)
	if err != nil {
		return ModelsResponse{}, err
	}
	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return ModelsResponse{}, err //nolint:wrapcheck
	}
	defer resp.Body.Close() //nolint:errcheck

	bts, err := io.ReadAll(resp.Body)
	if err != nil {
		return ModelsResponse{}, fmt.Errorf("google: read response: %w", err)
	}
	return ModelsResponse{
		StatusCode: resp.StatusCode,
		Body:       bts,
	}, nil
}

func (c *Client) generateURL(model string) string {
	return fmt.Sprintf(
		"%s/%s/models/%s:generateContent?key=%s",
		strings.TrimSuffix(c.config.BaseURL, "/"),
		apiVersion,
		url.PathEscape(model),
		url.QueryEscape(c.config.AuthToken),
	)
}

func (c *Client) modelsURL() string {
	return fmt.Sprintf(
		"%s/%s/models?key=%s",
		strings.TrimSuffix(c.config.BaseURL, "/"),
		apiVersion,
		url.QueryEscape(c.config.AuthToken),
	)
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) handleErrorResp(resp *http.Response) error {
	var errRes errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errRes); err != nil || errRes.Error == nil {
		msg := http.StatusText(resp.StatusCode)
		if err != nil {
			msg = err.Error()
		}
		return &proto.StatusError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	return &proto.StatusError{
		StatusCode: resp.StatusCode,
		Status:     errRes.Error.Status,
		Message:    errRes.Error.Message,
	}
}
