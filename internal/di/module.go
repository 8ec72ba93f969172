package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/mail"
	"github.com/polkiloo/storefront/internal/adapter/payment"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/pkg/auth"
	"github.com/polkiloo/storefront/internal/pkg/cipher"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/router"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module assembles the application graph. opts are appended last, so
// tests can swap infrastructure with fx.Replace.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		cipher.Module,
		postgres.Module,
		mail.Module,
		payment.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(s mail.Sender) worker.Sender { return s },
			func(d *worker.MailDispatcher) usecase.Notifier { return d },
			func(v payment.Validator) usecase.PaymentValidator { return v },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
