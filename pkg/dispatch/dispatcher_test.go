package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatchSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	d := New(TransportFunc(func(_ context.Context, path string, body []byte) error {
		gotPath = path
		return json.Unmarshal(body, &gotBody)
	}))

	result := d.Dispatch(context.Background(), FailVisible, "/api/subscribe", map[string]string{"email": "a@b.co"})
	if result.Status != StatusSuccess || result.Err != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if !result.Proceed() || result.Failed() {
		t.Fatalf("expected success to proceed")
	}
	if gotPath != "/api/subscribe" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if diff := cmp.Diff(map[string]any{"email": "a@b.co"}, gotBody); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatchFailurePolicies(t *testing.T) {
	boom := errors.New("boom")
	failing := TransportFunc(func(context.Context, string, []byte) error { return boom })

	core, logs := observer.New(zap.InfoLevel)
	d := New(failing, WithLogger(zap.New(core)))

	optimistic := d.Dispatch(context.Background(), OptimisticAdvance, "/api/onboarding", struct{}{})
	if optimistic.Status != StatusError || !errors.Is(optimistic.Err, boom) {
		t.Fatalf("unexpected optimistic result %+v", optimistic)
	}
	if !optimistic.Proceed() {
		t.Fatalf("expected optimistic failure to proceed")
	}

	visible := d.Dispatch(context.Background(), FailVisible, "/api/subscribe", struct{}{})
	if visible.Proceed() {
		t.Fatalf("expected fail-visible failure to stay put")
	}

	if got := logs.FilterMessage("submission failed, advancing anyway").Len(); got != 1 {
		t.Fatalf("expected one optimistic failure log, got %d", got)
	}
}

func TestDispatchWithoutTransport(t *testing.T) {
	result := New(nil).Dispatch(context.Background(), FailVisible, "/x", nil)
	if !errors.Is(result.Err, ErrNoTransport) {
		t.Fatalf("expected ErrNoTransport, got %v", result.Err)
	}
}

func TestDispatchEncodeFailure(t *testing.T) {
	called := false
	d := New(TransportFunc(func(context.Context, string, []byte) error {
		called = true
		return nil
	}))
	result := d.Dispatch(context.Background(), FailVisible, "/x", map[string]any{"bad": make(chan int)})
	if result.Status != StatusError || called {
		t.Fatalf("expected encode failure before transport, got %+v (called=%v)", result, called)
	}
}

func TestDispatchRejectsConcurrentSubmission(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32
	d := New(TransportFunc(func(ctx context.Context, _ string, _ []byte) error {
		calls.Add(1)
		close(entered)
		<-release
		return nil
	}))

	var wg sync.WaitGroup
	var first Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = d.Dispatch(context.Background(), OptimisticAdvance, "/api/onboarding", struct{}{})
	}()

	<-entered
	if !d.InFlight() {
		t.Fatalf("expected dispatcher to report in-flight")
	}
	second := d.Dispatch(context.Background(), OptimisticAdvance, "/api/onboarding", struct{}{})
	if !errors.Is(second.Err, ErrInFlight) || second.Proceed() {
		t.Fatalf("expected duplicate to be rejected, got %+v", second)
	}

	close(release)
	wg.Wait()

	if first.Status != StatusSuccess {
		t.Fatalf("unexpected first result %+v", first)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one post, got %d", got)
	}
	if d.InFlight() {
		t.Fatalf("expected gate to reopen")
	}
}

func TestHTTPTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/api/ok":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success":true}`))
		case "/api/bad":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid email address"}`))
		default:
			t.Errorf("unexpected path %s (body %s)", r.URL.Path, body)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	transport := NewHTTPTransport(srv.URL+"/", srv.Client())
	if err := transport.Post(context.Background(), "/api/ok", []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := transport.Post(context.Background(), "api/bad", []byte(`{}`))
	var statusErr *ResponseError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected ResponseError, got %v", err)
	}
	if statusErr.StatusCode() != http.StatusBadRequest || statusErr.Message != "Invalid email address" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestPolicyString(t *testing.T) {
	if OptimisticAdvance.String() != "optimistic-advance" || FailVisible.String() != "fail-visible" {
		t.Fatalf("unexpected policy names")
	}
}
