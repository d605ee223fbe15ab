package service

import (
	"context"
	"errors"

	"QuantAI/internal/domain/models"
)

// ErrEmptyResponse is returned when the backend answered without any text.
var ErrEmptyResponse = errors.New("backend returned no text")

// SignalBackend sends one form to the generative backend and returns its raw text.
// Transport faults are returned as errors; the text itself is not interpreted.
type SignalBackend interface {
	Generate(ctx context.Context, in models.UserInput) (string, error)
}
