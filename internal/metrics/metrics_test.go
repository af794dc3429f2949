package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.OrderInitiated()
	m.OrderExpired()
	m.PaymentVerified("ok")
	m.MintProcessed("completed")
	m.TxSubmission("confirmed")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, metric := range []string{
		"streetmint_orders_initiated_total 1",
		"streetmint_orders_expired_total 1",
		`streetmint_payments_verified_total{result="ok"} 1`,
		`streetmint_mints_processed_total{status="completed"} 1`,
		`streetmint_tx_submissions_total{outcome="confirmed"} 1`,
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("missing metric %q in exposition:\n%s", metric, body)
		}
	}
}

func TestIndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.OrderInitiated()

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(rec.Body.String(), "streetmint_orders_initiated_total 1") {
		t.Fatal("registries must not share state")
	}
}
