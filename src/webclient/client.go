package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client with sane timeouts. The pipeline treats
// a timeout the same as any other network failure: the stage yields nothing.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
