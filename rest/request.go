package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const maxAttempts = 5

type requestOptions struct {
	payload *Payload
	reason  string
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithPayload attaches an encoded message payload as the request body.
func WithPayload(p *Payload) RequestOption {
	return func(o *requestOptions) {
		o.payload = p
	}
}

// WithJSON marshals v and attaches it as a JSON request body.
func WithJSON(v any) RequestOption {
	return func(o *requestOptions) {
		dat, err := json.Marshal(v)
		if err != nil {
			panic("rest: unmarshalable request body: " + err.Error())
		}
		o.payload = &Payload{json: dat}
	}
}

// WithReason sets the X-Audit-Log-Reason header for the request.
func WithReason(reason string) RequestOption {
	return func(o *requestOptions) {
		o.reason = reason
	}
}

// Request performs a REST call and returns the raw response body.
//
// Requests sharing a rate-limit bucket are serialized. When a response
// reports the bucket as depleted, its lock is held past the call until the
// bucket resets, throttling the next caller. A tripped global rate limit
// suspends all requests until its window has passed. Transient failures
// (429 with a valid Via header, 500, 502, connection resets) are retried up
// to 5 attempts; all other non-2xx statuses surface immediately as typed
// errors.
func (c *Client) Request(ctx context.Context, r Route, opts ...RequestOption) ([]byte, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	bucket := r.Bucket()
	lock := c.locks.acquire(bucket)
	if err := lock.lock(ctx); err != nil {
		c.locks.release(bucket, lock)
		return nil, err
	}
	deferred := false
	defer func() {
		if !deferred {
			lock.unlock()
			c.locks.release(bucket, lock)
		}
	}()

	var lastStatus int
	var lastBody any
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.gate.wait(ctx); err != nil {
			return nil, err
		}
		if err := c.limiterGlobal.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := c.newRequest(ctx, r, &o)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < maxAttempts-1 && isConnReset(err) {
				continue
			}
			return nil, err
		}
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			if attempt < maxAttempts-1 && isConnReset(err) {
				continue
			}
			return nil, err
		}
		slog.Debug("discord response", "method", r.Method, "url", req.URL, "status", resp.StatusCode)
		data := jsonOrText(resp.Header, raw)
		lastStatus, lastBody = resp.StatusCode, data

		// The bucket is depleted. Keep its lock until the reset so the
		// next caller is throttled before hitting a 429.
		if !deferred && resp.Header.Get("X-Ratelimit-Remaining") == "0" && resp.StatusCode != http.StatusTooManyRequests {
			delta := parseResetAfter(resp.Header, c.useClock, time.Now())
			slog.Debug("rate limit bucket exhausted", "bucket", bucket, "retry", delta)
			deferred = true
			lock, key := lock, bucket
			c.after(delta, func() {
				lock.unlock()
				c.locks.release(key, lock)
			})
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if resp.Header.Get("Via") == "" {
				// Not from Discord itself. Banned by Cloudflare more than likely.
				return nil, newHTTPError(resp.StatusCode, data)
			}
			var rl rateLimitBody
			if err := json.Unmarshal(raw, &rl); err != nil {
				return nil, newHTTPError(resp.StatusCode, data)
			}
			retryAfter := time.Duration(rl.RetryAfter * float64(time.Second))
			slog.Warn("rate limited", "bucket", bucket, "retryAfter", retryAfter, "global", rl.Global)
			if rl.Global {
				c.gate.trip()
			}
			err := c.sleep(ctx, retryAfter)
			if rl.Global {
				c.gate.release()
			}
			if err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusInternalServerError || resp.StatusCode == http.StatusBadGateway {
			if err := c.sleep(ctx, time.Duration(1+attempt*2)*time.Second); err != nil {
				return nil, err
			}
			continue
		}

		return nil, classifyStatus(resp.StatusCode, data)
	}

	if lastStatus >= 500 {
		return nil, &ServerError{*newHTTPError(lastStatus, lastBody)}
	}
	return nil, newHTTPError(lastStatus, lastBody)
}

func (c *Client) newRequest(ctx context.Context, r Route, o *requestOptions) (*http.Request, error) {
	var body []byte
	var contentType string
	if o.payload != nil {
		var err error
		body, contentType, err = o.payload.encode()
		if err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Discord-Locale", c.locale)
	if c.token != "" {
		req.Header.Set("Authorization", string(c.tokenType)+" "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if o.reason != "" {
		req.Header.Set("X-Audit-Log-Reason", quoteReason(o.reason))
	}
	return req, nil
}

// quoteReason percent-encodes an audit log reason, keeping slashes and
// spaces readable.
func quoteReason(reason string) string {
	escaped := url.PathEscape(reason)
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	return strings.ReplaceAll(escaped, "%20", " ")
}

// jsonOrText decodes the response body as JSON when the content type says
// so, and falls back to the raw text otherwise. Thanks Cloudflare.
func jsonOrText(h http.Header, raw []byte) any {
	if strings.Contains(h.Get("Content-Type"), "application/json") {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	return string(raw)
}

func isConnReset(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return errors.Is(uerr.Err, io.ErrUnexpectedEOF) || errors.Is(uerr.Err, syscall.EPIPE)
	}
	return false
}
