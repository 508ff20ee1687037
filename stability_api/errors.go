package stability_api

import (
	"errors"
	"fmt"
)

// ErrNoImage is returned when a successful response carries no artifacts.
var ErrNoImage = errors.New("no image generated")

// UpstreamError is a non-200 response from the generation API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
