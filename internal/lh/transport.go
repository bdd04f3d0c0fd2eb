package lh

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

// TransportOptions configures the retrying, rate-limited transport.
type TransportOptions struct {
	RetryMax    int // additional attempts after the first
	BackoffBase time.Duration
	BackoffCap  time.Duration
	RPS         rate.Limit
	Burst       int
	Metrics     *Metrics
}

// DefaultTransportOptions returns defaults suitable for the Linkloft API.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		RetryMax:    3,
		BackoffBase: 250 * time.Millisecond,
		BackoffCap:  5 * time.Second,
		RPS:         10,
		Burst:       10,
		Metrics:     NewMetrics(),
	}
}

// RetryTransport wraps a base RoundTripper with rate limiting and bounded
// retries. 429 responses are retried for all methods (honoring
// Retry-After); 5xx only for GET, so a bulk write is never replayed after
// the server may have started processing it. Transport-level retries live
// here so callers never implement their own.
type RetryTransport struct {
	Base    http.RoundTripper
	Opts    TransportOptions
	limiter *rate.Limiter
}

// NewRetryTransport builds a transport from the given options.
func NewRetryTransport(opts TransportOptions) *RetryTransport {
	rps := opts.RPS
	if rps <= 0 {
		rps = 10
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	return &RetryTransport{Opts: opts, limiter: rate.NewLimiter(rps, burst)}
}

func (t *RetryTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// ensureGetBody guarantees the request body is replayable across retries.
func ensureGetBody(req *http.Request) error {
	if req.Body == nil || req.GetBody != nil {
		return nil
	}
	buf, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	req.Body.Close()
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	req.Body = io.NopCloser(bytes.NewReader(buf))
	return nil
}

func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := ensureGetBody(req); err != nil {
		return nil, err
	}
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRequest(req.Method)
	}

	attempts := t.Opts.RetryMax + 1
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		resp, err := t.base().RoundTrip(req)
		if err != nil {
			if isTransientNetErr(err) && attempt < attempts-1 {
				lastErr = err
				t.retrySleep(req, attempt, 0)
				continue
			}
			return nil, err
		}

		if t.Opts.Metrics != nil {
			t.Opts.Metrics.IncStatus(resp.StatusCode)
		}
		retriable := resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode >= 500 && req.Method == http.MethodGet)
		if retriable && attempt < attempts-1 {
			after := retryAfter(resp)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			t.retrySleep(req, attempt, after)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

// retrySleep waits before the next attempt: an explicit Retry-After wins,
// otherwise capped exponential backoff with full jitter.
func (t *RetryTransport) retrySleep(req *http.Request, attempt int, after time.Duration) {
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRetry()
	}
	d := after
	if d <= 0 {
		d = t.Opts.BackoffBase << attempt
		if t.Opts.BackoffCap > 0 && d > t.Opts.BackoffCap {
			d = t.Opts.BackoffCap
		}
		if d > 0 {
			d = time.Duration(rand.Int63n(int64(d))) + t.Opts.BackoffBase/2
		}
	}
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.AddBackoff(d)
	}
	select {
	case <-req.Context().Done():
	case <-time.After(d):
	}
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func isTransientNetErr(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, syscall.ECONNRESET)
}
