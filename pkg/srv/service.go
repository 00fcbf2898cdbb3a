package srv

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/sandevgo/tgsearch/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until ctx is done or a service fails,
// then shuts them down in reverse order.
func Run(ctx context.Context, services ...Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failed := make(chan error, len(services))
	StartServices(ctx, services, failed)

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-failed:
		cancel()
	}

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()
	ShutdownServices(shutdownCtx, services)

	return runErr
}

func StartServices(ctx context.Context, services []Service, failed chan<- error) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed to start", service)
				failed <- errors.Wrapf(err, "start %T", service)
			}
		}(service)
	}
}

func ShutdownServices(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
