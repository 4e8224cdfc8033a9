package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestDispatcher(sender worker.Sender) *worker.MailDispatcher {
	return worker.NewMailDispatcher(sender, 1, 4, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewMailDispatcherUsesConfig(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	d := newMailDispatcher(workerParams{
		Sender: sender,
		Config: &config.Config{MailWorkers: 2, MailQueueSize: 1},
		Logger: discardLogger(),
	})
	if d == nil {
		t.Fatal("expected mail dispatcher instance")
	}
	if err := d.Notify(model.Notification{To: "a@b.c"}); err != nil {
		t.Fatalf("first notify: %v", err)
	}
	if err := d.Notify(model.Notification{To: "a@b.c"}); err == nil {
		t.Fatal("expected configured queue size to be honoured")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	sender := &testhelpers.SenderStub{Delivered: make(chan model.Notification, 1)}
	mailer := newTestDispatcher(sender)

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Mailer:     mailer,
		Config:     &config.Config{ShutdownTimeout: 100 * time.Millisecond},
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	startCtx, cancel := context.WithCancel(context.Background())
	if err := hook.OnStart(startCtx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	cancel()

	if err := mailer.Notify(model.Notification{To: "ops@storefront.local"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	select {
	case <-sender.Delivered:
	case <-time.After(time.Second):
		t.Fatal("expected mailer to outlive the start context")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Mailer:     newTestDispatcher(&testhelpers.SenderStub{}),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}
	if got := shutdowner.Requests(); got != 1 {
		t.Fatalf("expected one shutdown request, got %d", got)
	}

	_ = recorder.Stop(context.Background())
}
