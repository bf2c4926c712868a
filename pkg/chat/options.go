package chat

import (
	"context"
	"os"
	"os/signal"

	loggerpkg "github.com/blackjackptit/uncensored-models/pkg/logger"
)

// Option configures optional dependencies of a Loop or Session.
type Option func(*options)

type options struct {
	logger      loggerpkg.Logger
	verbose     bool
	render      func(string) string
	turnContext func(context.Context) (context.Context, context.CancelFunc)
}

func defaultOptions() options {
	return options{
		logger:      loggerpkg.NopLogger{},
		render:      func(s string) string { return s },
		turnContext: interruptContext,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = loggerpkg.NopLogger{}
	}
	return o
}

// WithLogger injects a logger; debug entries are written only when verbose.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(o *options) {
		o.logger = l
		o.verbose = verbose
	}
}

// WithRenderer formats assistant replies before they are printed. History
// always keeps the raw reply.
func WithRenderer(render func(string) string) Option {
	return func(o *options) {
		if render != nil {
			o.render = render
		}
	}
}

// WithTurnContext replaces how the per-turn context is derived. The default
// cancels the turn on SIGINT.
func WithTurnContext(fn func(context.Context) (context.Context, context.CancelFunc)) Option {
	return func(o *options) {
		if fn != nil {
			o.turnContext = fn
		}
	}
}

// interruptContext cancels an in-flight turn on Ctrl+C instead of letting
// the signal kill the process.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
