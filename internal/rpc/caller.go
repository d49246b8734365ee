package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/metrics"
)

const defaultCallTimeout = 5 * time.Second

// Caller invokes named operations on a single backend service and
// normalizes every failure into a *ServiceError. It performs exactly one
// attempt per call; retries are the caller's responsibility.
type Caller struct {
	service string
	baseURL string
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewCaller creates a Caller for the service at baseURL. The timeout
// bounds every call; calls that gate authorization decisions must not
// hang waiting on a dead auth service.
func NewCaller(service, baseURL string, timeout time.Duration, log zerolog.Logger) *Caller {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Caller{
		service: service,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log,
	}
}

// Call sends payload to the remote operation named by pattern and decodes
// the success envelope's data into out (out may be nil when the reply data
// is not needed). Any domain-error envelope or transport failure returns a
// *ServiceError; absence of a success envelope is always an error, even on
// a 200 reply.
func (c *Caller) Call(ctx context.Context, pattern string, payload, out any) error {
	start := time.Now()
	err := c.call(ctx, pattern, payload, out)
	metrics.ServiceCallDuration.WithLabelValues(c.service, pattern).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) && se.Upstream() {
			outcome = "transport_error"
		} else {
			outcome = "domain_error"
		}
	}
	metrics.ServiceCallsTotal.WithLabelValues(c.service, pattern, outcome).Inc()
	return err
}

func (c *Caller) call(ctx context.Context, pattern string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", pattern, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pattern), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", pattern, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) || isTimeout(err)
		c.log.Error().Err(err).
			Str("service", c.service).
			Str("pattern", pattern).
			Bool("timeout", timedOut).
			Msg("service call transport failure")
		return NewUpstreamError(timedOut)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("pattern", pattern).Msg("service call read failure")
		return NewUpstreamError(false)
	}

	var probe struct {
		Success    bool            `json:"success"`
		StatusCode int             `json:"statusCode"`
		Message    string          `json:"message"`
		Code       int             `json:"code"`
		Errors     json.RawMessage `json:"errors"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		c.log.Error().Err(err).
			Str("service", c.service).
			Str("pattern", pattern).
			Int("http_status", resp.StatusCode).
			Msg("service reply is not an envelope")
		return NewUpstreamError(false)
	}

	if !probe.Success {
		statusCode := probe.StatusCode
		if statusCode == 0 {
			statusCode = resp.StatusCode
		}
		if statusCode < 400 {
			statusCode = http.StatusInternalServerError
		}
		code := probe.Code
		if code == 0 {
			code = domain.CodeInternalUnexpected
		}
		message := probe.Message
		if message == "" {
			message = fmt.Sprintf("an error occurred with the %s service", c.service)
		}
		var errDetail any
		if len(probe.Errors) > 0 {
			errDetail = probe.Errors
		}
		c.log.Warn().
			Str("service", c.service).
			Str("pattern", pattern).
			Int("status", statusCode).
			Int("code", code).
			Msg("service call domain error")
		return &ServiceError{StatusCode: statusCode, Code: code, Message: message, Errors: errDetail}
	}

	if out != nil {
		if err := json.Unmarshal(probe.Data, out); err != nil {
			c.log.Error().Err(err).Str("pattern", pattern).Msg("service reply data malformed")
			return NewUpstreamError(false)
		}
	}
	return nil
}

func (c *Caller) endpoint(pattern string) string {
	return c.baseURL + "/rpc/" + pattern
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
