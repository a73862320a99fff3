// Package health provides liveness and readiness endpoints backed by
// registered dependency checks (database, broker).
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the result of probing a single dependency.
type Check struct {
	Name    string        `json:"name"`
	Status  Status        `json:"status"`
	Message string        `json:"message,omitempty"`
	Latency time.Duration `json:"latency_ns"`
}

// CheckFunc probes one dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// Manager runs registered checks concurrently under a shared timeout.
type Manager struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
}

func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Manager{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
	}
}

func (m *Manager) Register(name string, fn CheckFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = fn
}

// Report probes every registered dependency and returns the overall status.
func (m *Manager) Report(ctx context.Context) (Status, []Check) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.RLock()
	names := make([]string, 0, len(m.checks))
	fns := make([]CheckFunc, 0, len(m.checks))
	for name, fn := range m.checks {
		names = append(names, name)
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	results := make([]Check, len(names))
	var wg sync.WaitGroup
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()
			check := Check{Name: names[i], Status: StatusHealthy}
			if err := fns[i](ctx); err != nil {
				check.Status = StatusUnhealthy
				check.Message = err.Error()
			}
			check.Latency = time.Since(start)
			results[i] = check
		}(i)
	}
	wg.Wait()

	overall := StatusHealthy
	for _, check := range results {
		if check.Status != StatusHealthy {
			overall = StatusUnhealthy
			break
		}
	}
	return overall, results
}

// LiveHandler answers as long as the process is serving requests.
func (m *Manager) LiveHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}

// ReadyHandler answers 200 only when every dependency check passes.
func (m *Manager) ReadyHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		overall, checks := m.Report(c.Request().Context())
		code := http.StatusOK
		if overall != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, echo.Map{"status": overall, "checks": checks})
	}
}
