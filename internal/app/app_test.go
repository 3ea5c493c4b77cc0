package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polvex/pharmatrack/internal/config"
	testhelpers "github.com/polvex/pharmatrack/internal/test"
	"github.com/polvex/pharmatrack/internal/worker"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:      "127.0.0.1:0",
		AuditQueueSize:  4,
		AuditWorkerPool: 1,
		ShutdownTimeout: time.Second,
	}
}

func TestNewHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	server := newHTTPServer(serverParams{Config: testConfig(), Router: engine})
	if server.Addr != "127.0.0.1:0" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
	if server.Handler == nil {
		t.Fatal("expected router handler")
	}
}

func TestNewAuditDispatcher(t *testing.T) {
	dispatcher := newAuditDispatcher(dispatcherParams{
		Audit:    &testhelpers.AuditRepositoryStub{},
		Notifier: &testhelpers.NotifierStub{},
		Config:   testConfig(),
		Logger:   testLogger(),
	})
	if dispatcher == nil {
		t.Fatal("expected dispatcher")
	}
}

func TestLifecycleStartStop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	server := newHTTPServer(serverParams{Config: cfg, Router: gin.New()})
	dispatcher := worker.NewAuditDispatcher(&testhelpers.AuditRepositoryStub{}, &testhelpers.NotifierStub{}, 4, 1, testLogger())

	recorder := &testhelpers.LifecycleRecorder{}
	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     testLogger(),
		Server:     server,
		Dispatcher: dispatcher,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one lifecycle hook, got %d", len(recorder.Hooks))
	}
	hook := recorder.Hooks[0]

	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	// ListenAndServe runs in a goroutine; give it a moment before stopping.
	time.Sleep(20 * time.Millisecond)

	if err := hook.OnStop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestLifecycleShutsDownOnServeFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Occupy a port so ListenAndServe fails immediately.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	cfg := testConfig()
	cfg.RunAddress = listener.Addr().String()
	server := newHTTPServer(serverParams{Config: cfg, Router: gin.New()})
	dispatcher := worker.NewAuditDispatcher(&testhelpers.AuditRepositoryStub{}, &testhelpers.NotifierStub{}, 4, 1, testLogger())

	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	recorder := &testhelpers.LifecycleRecorder{}
	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     testLogger(),
		Server:     server,
		Dispatcher: dispatcher,
		Config:     cfg,
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(2 * time.Second):
		t.Fatal("expected shutdown after serve failure")
	}

	if err := recorder.Hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}
