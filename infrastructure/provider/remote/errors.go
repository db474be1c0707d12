// Package remote holds the helpers shared by the provider implementations.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/rios0rios0/gitfleet/domain"
)

// Classify maps an SDK listing error onto the domain error kinds. Transport
// failures and non-2xx statuses become ErrRemoteRequestFailed, bodies that do
// not decode become ErrRemoteDecodeFailed.
func Classify(subject string, err error) error {
	var urlErr *url.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &urlErr):
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteRequestFailed, subject, err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteDecodeFailed, subject, err)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteRequestFailed, subject, err)
	}
}
