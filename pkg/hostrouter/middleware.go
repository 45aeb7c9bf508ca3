// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hostrouter

import (
	"net/http"
	"strings"

	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/tracing"
)

const RewrittenFromHeader = "X-Rewritten-From"

type Middleware struct {
	router *Router
	// paths under these prefixes are served by this service and never routed
	exempt []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) isExempt(path string) bool {
	for _, p := range m.exempt {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

func (m *Middleware) Route() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := m.tracer.Start(r.Context(), "hostrouter.Middleware.Route")
			d := m.router.Route(r.Host, r.URL.Path, r.URL.RawQuery)
			span.End()

			switch d.Kind {
			case Redirect:
				m.logger.Debugf("redirecting %s to %s", r.URL.Path, d.Path)
				http.Redirect(w, r, d.Path, http.StatusTemporaryRedirect)
				return
			case Rewrite, PassThrough:
				next.ServeHTTP(w, rewrite(r.WithContext(ctx), d.Path))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rewrite(r *http.Request, target string) *http.Request {
	path, query, _ := strings.Cut(target, "?")

	u := *r.URL
	u.Path = path
	u.RawPath = ""
	u.RawQuery = query

	original := r.URL.RequestURI()

	r.URL = &u
	r.RequestURI = u.RequestURI()
	r.Header.Set(RewrittenFromHeader, original)

	return r
}

func NewMiddleware(router *Router, exempt []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.router = router
	m.exempt = exempt
	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
