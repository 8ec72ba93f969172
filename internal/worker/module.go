package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the background email dispatcher.
var Module = fx.Provide(newMailDispatcher)

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Sender Sender
	Logger *slog.Logger
}

func newMailDispatcher(p dispatcherParams) *MailDispatcher {
	return NewMailDispatcher(p.Sender, p.Config.MailWorkers, p.Config.MailQueueSize, p.Logger)
}
