package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/AmirOssanloo/pkg-sits-node-service/internal/app"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/logger"
	"github.com/AmirOssanloo/pkg-sits-node-service/internal/utils"
	"github.com/AmirOssanloo/pkg-sits-node-service/models"
	"golang.org/x/sync/errgroup"
)

// HealthCheck is a named probe run by the health endpoint. Check must honour
// ctx cancellation; a check that outlives the timeout is reported as failed.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// health runs every check concurrently and answers 200 when all pass, 503
// otherwise.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	timeout := h.cfg.Core.Health.Timeout

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]models.HealthCheckResult, len(h.checks))
	)
	for _, check := range h.checks {
		g.Go(func() error {
			res := runHealthCheck(r.Context(), check, timeout)
			mu.Lock()
			results[check.Name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report := models.HealthReport{
		Status:       models.HealthOK,
		Timestamp:    utils.Timestamp(time.Now()),
		Service:      h.cfg.Name,
		Version:      h.buildInfo.BuildVersion(),
		Uptime:       time.Since(h.startedAt).Seconds(),
		ResponseTime: time.Since(start).Milliseconds(),
		Checks:       results,
	}
	status := http.StatusOK
	for _, res := range results {
		if res.Status != models.HealthOK {
			report.Status = models.HealthError
			status = http.StatusServiceUnavailable
			break
		}
	}

	if _, err := utils.WriteJSON(w, report, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing health report")
	}
}

func runHealthCheck(ctx context.Context, check HealthCheck, timeout time.Duration) models.HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf(app.MsgHealthCheckPanicked, rec)
			}
		}()
		done <- check.Check(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf(app.MsgHealthCheckTimedOut, timeout)
	}

	res := models.HealthCheckResult{Status: models.HealthOK, ResponseTime: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = models.HealthError
		res.Error = err.Error()
	}
	return res
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, models.PingResponse{Timestamp: utils.Timestamp(time.Now())}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing ping response")
	}
}
