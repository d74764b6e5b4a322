// Package provider provides the interface generation backends implement.
package provider

import (
	"context"
	"errors"

	"github.com/charmbracelet/ligas/internal/proto"
)

// ErrNoContent happens when the client is returning no content.
var ErrNoContent = errors.New("no content")

// Client is a generation client.
type Client interface {
	// Generate sends a single request and returns the model text.
	//
	// Implementations convert service failures into [*proto.StatusError]
	// and blocked answers into [proto.ErrRefused].
	Generate(context.Context, proto.Request) (string, error)
}
