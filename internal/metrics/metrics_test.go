package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveFetch("TX", StatusOK, 120*time.Millisecond)
	m.ObserveFetch("TX", StatusOK, 80*time.Millisecond)
	m.ObserveFetch("TX", StatusCached, 0)
	m.ObserveFetch("OK", StatusError, time.Second)
	m.SetAlerts("TX", 3)
	m.AddMismatches("TX", 2)
	m.AddMismatches("OK", 0)

	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("TX", StatusOK)); got != 2 {
		t.Errorf("fetch total ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FetchTotal.WithLabelValues("TX", StatusCached)); got != 1 {
		t.Errorf("fetch total cached = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Alerts.WithLabelValues("TX")); got != 3 {
		t.Errorf("alerts = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.VerifyMismatches.WithLabelValues("TX")); got != 2 {
		t.Errorf("mismatches = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.VerifyMismatches); got != 1 {
		t.Errorf("zero mismatches should not create a series, got %d series", got)
	}
	if got := testutil.CollectAndCount(m.FetchDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetAlerts("TX", 1)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `wxalerts_alerts{area="TX"} 1`) {
		t.Errorf("exposition missing gauge:\n%s", body)
	}
}

func TestServe(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := listener.Addr().String()
	listener.Close()

	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Serve(ctx, addr)
	}()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("metrics endpoint never came up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not stop")
	}
}
