package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/binleiwang/tau2-bench/pkg/tools"
)

func TestObserveInvocation(t *testing.T) {
	c := NewCollector(nil, prometheus.NewRegistry())

	c.ObserveInvocation("apply_discount", tools.KindWrite, tools.StatusDenied, 2*time.Millisecond)
	c.ObserveInvocation("apply_discount", tools.KindWrite, tools.StatusDenied, 1*time.Millisecond)
	c.ObserveInvocation("get_restaurant_info", tools.KindRead, tools.StatusSuccess, time.Millisecond)

	denied := testutil.ToFloat64(c.invocationsTotal.WithLabelValues(
		"apply_discount", string(tools.KindWrite), string(tools.StatusDenied)))
	if denied != 2 {
		t.Errorf("denied invocations = %v, want 2", denied)
	}
	ok := testutil.ToFloat64(c.invocationsTotal.WithLabelValues(
		"get_restaurant_info", string(tools.KindRead), string(tools.StatusSuccess)))
	if ok != 1 {
		t.Errorf("success invocations = %v, want 1", ok)
	}
}

func TestObserveSession(t *testing.T) {
	c := NewCollector(nil, prometheus.NewRegistry())

	c.ObserveSession("cake-failure-escalation", true, 1.0, 80*time.Millisecond)
	c.ObserveSession("cake-failure-escalation", false, 0.25, 120*time.Millisecond)

	pass := testutil.ToFloat64(c.sessionsTotal.WithLabelValues("cake-failure-escalation", "pass"))
	fail := testutil.ToFloat64(c.sessionsTotal.WithLabelValues("cake-failure-escalation", "fail"))
	if pass != 1 || fail != 1 {
		t.Errorf("sessions pass=%v fail=%v, want 1 and 1", pass, fail)
	}
}

func TestDisabledCollectorRecordsNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	c := NewCollector(cfg, prometheus.NewRegistry())

	c.ObserveInvocation("seat_party", tools.KindWrite, tools.StatusSuccess, time.Millisecond)
	c.ObserveSession("walk-in-seating", true, 1.0, time.Millisecond)

	if n := testutil.CollectAndCount(c.invocationsTotal); n != 0 {
		t.Errorf("invocations collected %d series, want 0", n)
	}
	if n := testutil.CollectAndCount(c.sessionsTotal); n != 0 {
		t.Errorf("sessions collected %d series, want 0", n)
	}
}

func TestCollectorAsRegistryObserver(t *testing.T) {
	var _ tools.Observer = (*Collector)(nil)
}

func TestHandlerExposition(t *testing.T) {
	c := NewCollector(nil, prometheus.NewRegistry())
	c.ObserveInvocation("get_menu_details", tools.KindRead, tools.StatusSuccess, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "tau2_bench_tool_invocations_total") {
		t.Errorf("exposition missing invocation counter:\n%s", body)
	}
}
