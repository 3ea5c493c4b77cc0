package di

import (
	"go.uber.org/fx"

	"github.com/polvex/pharmatrack/internal/adapter/audit"
	"github.com/polvex/pharmatrack/internal/app"
	"github.com/polvex/pharmatrack/internal/config"
	"github.com/polvex/pharmatrack/internal/logger"
	"github.com/polvex/pharmatrack/internal/pkg/auth"
	"github.com/polvex/pharmatrack/internal/server/http/handlers"
	"github.com/polvex/pharmatrack/internal/server/http/router"
	"github.com/polvex/pharmatrack/internal/storage/postgres"
	"github.com/polvex/pharmatrack/internal/usecase"
	"github.com/polvex/pharmatrack/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		audit.Module,
		usecase.Module,
		fx.Provide(func(d *worker.AuditDispatcher) usecase.AuditEmitter { return d }),
		fx.Provide(func(f *app.PharmacyFacade) handlers.PharmacyFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
