package hub

import (
	"net"
	"net/http"
	"sync"
	"time"
)

var (
	defaultHTTPClient *http.Client
	clientOnce        sync.Once
)

// getHTTPClient returns the shared HTTP client with connection pooling, used
// for all hub requests.
func getHTTPClient() *http.Client {
	clientOnce.Do(func() {
		transport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     20,
			IdleConnTimeout:     90 * time.Second,

			ForceAttemptHTTP2: true,

			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,

			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		}

		defaultHTTPClient = &http.Client{
			Transport: transport,
			// Timeouts are handled per request.
			Timeout: 0,
		}
	})

	return defaultHTTPClient
}

// newHTTPClientWithTimeout shares the pooled transport with a custom timeout.
func newHTTPClientWithTimeout(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: getHTTPClient().Transport,
		Timeout:   timeout,
	}
}
