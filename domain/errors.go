package domain

import "errors"

var (
	// ErrMissingCredential means the credential environment variable is not set.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidConfiguration means the provider configuration cannot be used as is.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrRemoteRequestFailed covers transport failures and non-2xx responses.
	ErrRemoteRequestFailed = errors.New("remote request failed")

	// ErrRemoteDecodeFailed means the response body did not have the expected shape.
	ErrRemoteDecodeFailed = errors.New("remote response could not be decoded")
)
