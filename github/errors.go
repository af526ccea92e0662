package github

import (
	"errors"
	"fmt"

	gh "github.com/google/go-github/v50/github"
)

const rateLimitDocsURL = "https://docs.github.com/rest/overview/resources-in-the-rest-api#rate-limiting"

// FetchError is a request that never produced an HTTP status, i.e. a
// transport failure or a timeout.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "fetch failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// APIError is a structured error payload returned by the API, carrying the
// provider's message and documentation link.
type APIError struct {
	Message          string
	DocumentationURL string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.DocumentationURL)
}

// classify maps go-github failures onto the error taxonomy. Responses with a
// message and documentation_url body come back as *gh.ErrorResponse, except
// for rate limits which go-github turns into dedicated types that drop the
// documentation_url field.
func classify(err error) error {
	var rateErr *gh.RateLimitError

	if errors.As(err, &rateErr) {
		return &APIError{
			Message:          rateErr.Message,
			DocumentationURL: rateLimitDocsURL,
		}
	}

	var abuseErr *gh.AbuseRateLimitError

	if errors.As(err, &abuseErr) {
		return &APIError{
			Message:          abuseErr.Message,
			DocumentationURL: rateLimitDocsURL,
		}
	}

	var ghErr *gh.ErrorResponse

	if errors.As(err, &ghErr) {
		return &APIError{
			Message:          ghErr.Message,
			DocumentationURL: ghErr.DocumentationURL,
		}
	}

	return &FetchError{Err: err}
}
