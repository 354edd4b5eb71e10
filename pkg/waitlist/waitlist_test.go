package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
)

type capture struct {
	calls int
	path  string
	body  map[string]any
	err   error
}

func (c *capture) Post(_ context.Context, path string, body []byte) error {
	c.calls++
	c.path = path
	c.body = nil
	_ = json.Unmarshal(body, &c.body)
	return c.err
}

func TestSubmitRejectsBadEmailBeforeNetwork(t *testing.T) {
	c := &capture{}
	form := New(Subscribe, dispatch.New(c))

	for _, email := range []string{"bad", "a@b", "@b.co", "a@b.", ""} {
		if _, err := form.Submit(context.Background(), email, ""); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("%q: expected ErrInvalidEmail, got %v", email, err)
		}
	}
	if c.calls != 0 {
		t.Fatalf("expected no network calls, got %d", c.calls)
	}
	if status, _ := form.Status(); status != dispatch.StatusError {
		t.Fatalf("expected error status, got %q", status)
	}
}

func TestSubmitSubscribe(t *testing.T) {
	c := &capture{}
	form := New(Subscribe, dispatch.New(c))

	result, err := form.Submit(context.Background(), " a@b.co ", "did:ignored")
	if err != nil || result.Status != dispatch.StatusSuccess {
		t.Fatalf("unexpected result %+v err=%v", result, err)
	}
	if c.path != SubscribePath {
		t.Fatalf("unexpected path %q", c.path)
	}
	if diff := cmp.Diff(map[string]any{"email": "a@b.co"}, c.body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitClusterCarriesAgentDID(t *testing.T) {
	c := &capture{}
	form := New(Cluster, dispatch.New(c))

	if _, err := form.Submit(context.Background(), "a@b.co", "did:syn:123"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.path != ClusterWaitlistPath {
		t.Fatalf("unexpected path %q", c.path)
	}
	want := map[string]any{"email": "a@b.co", "agentDid": "did:syn:123"}
	if diff := cmp.Diff(want, c.body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFailureIsVisibleAndRetryable(t *testing.T) {
	c := &capture{err: errors.New("503")}
	form := New(Cluster, dispatch.New(c))

	result, err := form.Submit(context.Background(), "a@b.co", "")
	if err == nil || result.Proceed() {
		t.Fatalf("expected visible failure, got %+v", result)
	}
	status, lastErr := form.Status()
	if status != dispatch.StatusError || lastErr == nil {
		t.Fatalf("expected error status, got %q %v", status, lastErr)
	}

	c.err = nil
	if _, err := form.Submit(context.Background(), "a@b.co", ""); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if status, _ := form.Status(); status != dispatch.StatusSuccess {
		t.Fatalf("expected success after retry, got %q", status)
	}
	if c.calls != 2 {
		t.Fatalf("expected two posts, got %d", c.calls)
	}

	form.Reset()
	if status, _ := form.Status(); status != dispatch.StatusIdle {
		t.Fatalf("expected idle after reset, got %q", status)
	}
}
