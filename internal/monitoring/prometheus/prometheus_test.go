// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/canonical/agency-service/internal/logging"
)

func TestMonitorMetrics(t *testing.T) {
	m := NewMonitor("agency-service-test", logging.NewNoopLogger())

	if m.GetService() != "agency-service-test" {
		t.Fatalf("unexpected service %s", m.GetService())
	}

	if err := m.SetResponseTimeMetric(map[string]string{"route": "GET/agency", "status": "307"}, 0.01); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := m.SetDependencyAvailability(map[string]string{"component": "kratos"}, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMonitorUninstantiated(t *testing.T) {
	m := new(Monitor)

	if err := m.SetResponseTimeMetric(map[string]string{}, 1); err == nil {
		t.Error("expected error on uninstantiated histogram")
	}

	if err := m.SetDependencyAvailability(map[string]string{}, 1); err == nil {
		t.Error("expected error on uninstantiated gauge")
	}
}
