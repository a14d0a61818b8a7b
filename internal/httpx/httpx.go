package httpx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable marks an external service failure that survived the
// bounded retry. Callers surface it as a service-unavailable condition.
var ErrUnavailable = errors.New("external service unavailable")

// NewClient builds an HTTP client tuned for long-running model calls.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// DoWithRetry performs the request with a single bounded retry for
// transient transport failures (network errors and 5xx responses).
// Non-transient responses are returned to the caller untouched.
// build must construct a fresh request per attempt so the body can be
// resent.
func DoWithRetry(ctx context.Context, client *http.Client, retries int, log logrus.FieldLogger, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			// Caller-initiated cancellation is not a transient failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			log.WithError(err).WithField("attempt", attempt+1).Warn("transport failure, may retry")
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %s", resp.Status)
			log.WithField("status", resp.StatusCode).WithField("attempt", attempt+1).Warn("server error, may retry")
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%v: %w", lastErr, ErrUnavailable)
}
