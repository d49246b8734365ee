package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is alive. It deliberately checks
// nothing else; a dependency outage must not get the gateway restarted.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessHandler probes the gateway's dependencies: Redis and each
// backend service's health endpoint.
type ReadinessHandler struct {
	rdb      *redis.Client
	backends map[string]string
	client   *http.Client
}

// NewReadinessHandler takes the backend map as service name to base URL.
func NewReadinessHandler(rdb *redis.Client, backends map[string]string) *ReadinessHandler {
	return &ReadinessHandler{
		rdb:      rdb,
		backends: backends,
		client:   &http.Client{Timeout: 2 * time.Second},
	}
}

// Readiness reports per-dependency status. Any degraded dependency turns
// the overall reply into a 503 so load balancers stop routing here.
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	for name, base := range h.backends {
		if h.probe(ctx, base+"/health") {
			checks[name] = "up"
		} else {
			checks[name] = "down"
			healthy = false
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.JSON(status, map[string]any{"status": overall, "checks": checks})
}

func (h *ReadinessHandler) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
