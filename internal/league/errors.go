package league

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/ligas/internal/proto"
)

type panicError struct {
	v any
}

func (p panicError) Error() string {
	return fmt.Sprintf("generation panicked: %v", p.v)
}

// Classify maps a provider error to the kind of failure it represents.
func Classify(err error) proto.ErrorKind {
	if err == nil {
		return proto.KindNone
	}

	se := &proto.StatusError{}
	if errors.As(err, &se) {
		return classifyStatus(se)
	}

	if errors.Is(err, proto.ErrRefused) {
		return proto.KindRefused
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return proto.KindNetwork
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return proto.KindNetwork
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return proto.KindNetwork
	}

	return proto.KindUnknown
}

func classifyStatus(err *proto.StatusError) proto.ErrorKind {
	switch {
	case err.StatusCode == http.StatusUnauthorized,
		err.StatusCode == http.StatusForbidden,
		strings.Contains(strings.ToLower(err.Message), "api key"):
		return proto.KindCredential
	case err.StatusCode == http.StatusTooManyRequests,
		err.Status == "RESOURCE_EXHAUSTED":
		return proto.KindQuota
	case err.StatusCode >= http.StatusInternalServerError:
		return proto.KindServer
	case err.StatusCode >= http.StatusBadRequest:
		return proto.KindRequest
	default:
		return proto.KindUnknown
	}
}

// Reason returns a short, user-facing description of a failure kind.
func Reason(kind proto.ErrorKind) string {
	switch kind {
	case proto.KindNetwork:
		return "Could not reach the Gemini API."
	case proto.KindCredential:
		return "Invalid Gemini API key."
	case proto.KindQuota:
		return "You've hit your Gemini API quota."
	case proto.KindRequest:
		return "Gemini API request error."
	case proto.KindRefused:
		return "The model refused to answer."
	case proto.KindServer:
		return "Gemini API server error."
	default:
		return "There was a problem with the Gemini API request."
	}
}
