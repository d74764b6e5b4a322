// Package proto shared protocol.
package proto

import (
	"errors"
	"fmt"
)

// Roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Request is a single generation request.
type Request struct {
	Model             string
	Input             string
	SystemInstruction string
	Temperature       *float64
	MaxTokens         *int64
}

// ErrRefused happens when the model declines to answer the request.
var ErrRefused = errors.New("the model refused to answer")

// StatusError is a failed response from the generation service.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("error %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// ErrorKind is the kind of failure a generation ended with.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	KindNetwork
	KindCredential
	KindQuota
	KindRequest
	KindRefused
	KindServer
	KindUnknown
)

var kindNames = map[ErrorKind]string{
	KindNone:       "none",
	KindNetwork:    "network",
	KindCredential: "credential",
	KindQuota:      "quota",
	KindRequest:    "request",
	KindRefused:    "refused",
	KindServer:     "server",
	KindUnknown:    "unknown",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Result is the outcome of one generation: either the model text or an
// error with its kind.
type Result struct {
	Text string
	Kind ErrorKind
	Err  error
}

// OK reports whether the generation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// String returns the generated text, or the error text on failure.
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Text
}
