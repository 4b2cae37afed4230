package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps *resty.Client so application defaults live in one place.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client rooted at baseURL with a per-request
// timeout. resty's own retry loop stays disabled: failed mutations are
// retried by the sync queue, not by the transport.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
