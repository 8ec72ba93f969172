package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module exposes the payment validator to fx graph.
var Module = fx.Provide(newValidator)

type validatorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newValidator(p validatorParams) (Validator, error) {
	if p.Config.PaymentGatewayAddress == "" {
		p.Logger.Info("payment gateway not configured, using test card allow-list")
		return AllowList{}, nil
	}
	return NewHTTPClient(p.Config.PaymentGatewayAddress, p.Logger)
}
