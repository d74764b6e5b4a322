package google

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/ligas/internal/provider"
)

func fromProtoRequest(request proto.Request) MessageCompletionRequest {
	body := MessageCompletionRequest{
		Contents: []Content{{
			Role:  proto.RoleUser,
			Parts: []Part{{Text: request.Input}},
		}},
		GenerationConfig: GenerationConfig{
			CandidateCount: 1,
		},
	}
	if request.SystemInstruction != "" {
		body.SystemInstruction = &Content{
			Parts: []Part{{Text: request.SystemInstruction}},
		}
	}
	if request.Temperature != nil {
		body.GenerationConfig.Temperature = request.Temperature
	}
	if request.MaxTokens != nil {
		body.GenerationConfig.MaxOutputTokens = uint(*request.MaxTokens) //nolint:gosec
	}
	return body
}

func toText(resp CompletionMessageResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", proto.ErrRefused, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", provider.ErrNoContent
	}
	candidate := resp.Candidates[0]
	if isBlockedFinish(candidate.FinishReason) {
		return "", fmt.Errorf("%w: %s", proto.ErrRefused, candidate.FinishReason)
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", provider.ErrNoContent
	}
	return sb.String(), nil
}

func isBlockedFinish(reason string) bool {
	switch reason {
	case "SAFETY", "RECITATION", "BLOCKLIST", "PROHIBITED_CONTENT", "SPII":
		return true
	default:
		return false
	}
}
