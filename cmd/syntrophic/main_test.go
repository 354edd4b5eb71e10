package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-syntrophic/components/signup"
	"github.com/goliatone/go-syntrophic/internal/config"
	"github.com/goliatone/go-syntrophic/pkg/notify"
	"github.com/goliatone/go-syntrophic/pkg/renderers/tui"
)

type sentLog struct {
	mu       sync.Mutex
	subjects []string
}

func (l *sentLog) mailer() notify.Mailer {
	return notify.MailerFunc(func(_ context.Context, msg notify.Message) (string, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.subjects = append(l.subjects, msg.Subject)
		return "id", nil
	})
}

func (l *sentLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.subjects...)
}

func newAPIServer(t *testing.T, sent *sentLog) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	_, err := signup.RegisterRoutes(mux, "", signup.WithMailer(sent.mailer()))
	require.NoError(t, err)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubscribeCmd(t *testing.T) {
	sent := &sentLog{}
	ts := newAPIServer(t, sent)

	out, err := execute(t, "subscribe", "reader@example.com", "--endpoint", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks! Check your inbox.")
	assert.Equal(t, []string{"New Light Paper Request"}, sent.list())
}

func TestWaitlistCmd(t *testing.T) {
	sent := &sentLog{}
	ts := newAPIServer(t, sent)

	out, err := execute(t, "waitlist", "agent@example.com", "--agent-did", "did:example:1", "--endpoint", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "on the list")
	assert.Equal(t, []string{"New Cluster Waitlist Signup"}, sent.list())

	_, err = execute(t, "waitlist", "not-an-email", "--endpoint", ts.URL)
	require.Error(t, err)
	assert.Len(t, sent.list(), 1)
}

func TestSubscribeCmd_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to process subscription"}`))
	}))
	defer ts.Close()

	_, err := execute(t, "subscribe", "reader@example.com", "--endpoint", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to process subscription")
}

func TestServeCmd_RequiresResendKey(t *testing.T) {
	t.Setenv("SYNTROPHIC_MAIL_DRIVER", "resend")
	t.Setenv("RESEND_API_KEY", "")

	_, err := execute(t, "serve", "--addr", "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestBuildSite_LogDriver(t *testing.T) {
	t.Setenv("SYNTROPHIC_MAIL_DRIVER", "log")
	t.Setenv("SYNTROPHIC_THEME_VARIANT", "light")
	cfg, err := config.Load()
	require.NoError(t, err)

	handler, err := buildSite(cfg, zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--color-surface: #f9fafb;")
}

func TestServeHTTP_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveHTTP(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}), time.Second, zap.NewNop())
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

type abortingDriver struct{}

func (abortingDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", tui.ErrAborted
}
func (abortingDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, tui.ErrAborted
}
func (abortingDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 0, tui.ErrAborted
}
func (abortingDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", tui.ErrAborted
}
func (abortingDriver) Info(context.Context, string) error { return nil }

func TestOnboardCmd_Aborted(t *testing.T) {
	var out bytes.Buffer
	cmd := newOnboardCmd(&app{out: &out, logger: zap.NewNop(), driver: abortingDriver{}})
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	cmd.SetContext(context.Background())

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Onboarding cancelled.")
}
