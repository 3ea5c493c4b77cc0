package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polvex/pharmatrack/internal/adapter/audit"
	"github.com/polvex/pharmatrack/internal/app"
	"github.com/polvex/pharmatrack/internal/config"
	"github.com/polvex/pharmatrack/internal/domain/repository"
	"github.com/polvex/pharmatrack/internal/storage/postgres"
	"github.com/polvex/pharmatrack/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		JWTSecret:          "secret",
		ExpiringWindowDays: 30,
		AuditQueueSize:     1,
		AuditWorkerPool:    1,
		ShutdownTimeout:    time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	staffRepo := test.NewStaffRepositoryStub()
	orderRepo := &test.OrderRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}
	batchRepo := &test.BatchRepositoryStub{}
	productRepo := &test.ProductRepositoryStub{}
	patientRepo := &test.PatientRepositoryStub{}
	auditRepo := &test.AuditRepositoryStub{}
	notifier := &test.NotifierStub{}

	var facade *app.PharmacyFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.StaffRepository(staffRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(repository.BatchRepository(batchRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.PatientRepository(patientRepo)),
			fx.Replace(repository.AuditRepository(auditRepo)),
			fx.Replace(audit.Notifier(notifier)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected pharmacy facade instance")
	}
}
