// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	httpTypes "github.com/canonical/agency-service/internal/http/types"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/internal/version"
)

const pingTimeout = 2 * time.Second

type Status struct {
	Status       string          `json:"status"`
	Dependencies map[string]bool `json:"dependencies"`
}

type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version,omitempty"`
}

type API struct {
	dependencies map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.status)
	mux.Get("/api/v0/version", a.version)
}

// status pings every dependency and reports 503 when one of them is down.
func (a *API) status(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.status")
	defer span.End()

	s := Status{Status: "ok", Dependencies: make(map[string]bool, len(a.dependencies))}
	code := http.StatusOK

	for name, dep := range a.dependencies {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := dep.Ping(pingCtx)
		cancel()

		up := err == nil
		s.Dependencies[name] = up

		availability := 1.0
		if !up {
			a.logger.Warnf("dependency %s is unavailable: %v", name, err)
			availability = 0
			s.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if err := a.monitor.SetDependencyAvailability(map[string]string{"component": name}, availability); err != nil {
			a.logger.Debugf("failed to set availability of %s: %v", name, err)
		}
	}

	httpTypes.WriteJSON(w, code, s)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	httpTypes.WriteJSON(w, http.StatusOK, NewBuildInfo())
}

func NewBuildInfo() BuildInfo {
	info := BuildInfo{Version: version.Version}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
	}

	return info
}

func NewAPI(dependencies map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.dependencies = dependencies

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
