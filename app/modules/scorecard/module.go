package scorecard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app/eventbus"
	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardhandlers "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/handlers"
	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/parsers"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	scorecardrouter "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/router"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/config"
	bowljwt "github.com/Black-And-White-Club/bowl-bot/pkg/jwt"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
)

// Module represents the scorecard module.
type Module struct {
	EventBus         eventbus.EventBus
	ScorecardService scorecardservice.Service
	ScorecardRouter  *scorecardrouter.ScorecardRouter
	requestRouter    *scorecardrouter.RequestRouter
	repo             scorecarddb.Repository
	config           *config.Config
	logger           *slog.Logger
	cancelFunc       context.CancelFunc
	now              func() time.Time
}

// NewScorecardModule creates the scorecard module and registers its routes. nc and
// httpRouter are optional: without a NATS connection the request/reply subject is not
// served, and without an HTTP router no routes are mounted.
func NewScorecardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo scorecarddb.Repository,
	eventBus eventbus.EventBus,
	router *message.Router,
	nc *nats.Conn,
	httpRouter chi.Router,
	tokens bowljwt.Service,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer
	metrics := obs.Metrics

	logger.InfoContext(ctx, "scorecard.NewScorecardModule called")

	scorecardService := scorecardservice.NewScorecardService(repo, parsers.NewFactory(), logger, metrics, tracer)
	handlers := scorecardhandlers.NewScorecardHandlers(scorecardService, eventBus, logger, tracer, metrics)

	scorecardRouter := scorecardrouter.NewScorecardRouter(logger, router, eventBus, eventBus, tracer, metrics, obs.Registry)
	if err := scorecardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure scorecard router: %w", err)
	}

	var requestRouter *scorecardrouter.RequestRouter
	if nc != nil {
		requestRouter = scorecardrouter.NewRequestRouter(handlers, nc)
	}

	if httpRouter != nil {
		scorecardrouter.RegisterRoutes(httpRouter, handlers, scorecardrouter.HTTPConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RateLimit:      cfg.HTTP.RateLimit,
			RateBurst:      cfg.HTTP.RateBurst,
		}, tokens)
	}

	return &Module{
		EventBus:         eventBus,
		ScorecardService: scorecardService,
		ScorecardRouter:  scorecardRouter,
		requestRouter:    requestRouter,
		repo:             repo,
		config:           cfg,
		logger:           logger,
		now:              time.Now,
	}, nil
}

// Run serves the request/reply subject and expires idle games until ctx is done. It
// returns early with an error when the request/reply subscription cannot be made.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) error {
	m.logger.InfoContext(ctx, "Starting scorecard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.requestRouter != nil {
		if err := m.requestRouter.Start(m.config.NATS.RequestSubject, m.config.NATS.QueueGroup); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start scorecard request router", "error", err)
			return fmt.Errorf("failed to start scorecard request router: %w", err)
		}
		m.logger.InfoContext(ctx, "Scorecard request router started",
			"subject", m.config.NATS.RequestSubject,
			"queue_group", m.config.NATS.QueueGroup,
		)
	}

	interval := m.config.Games.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.InfoContext(ctx, "Scorecard module goroutine stopped")
			return nil
		case <-ticker.C:
			m.expireIdleGames(ctx)
		}
	}
}

// expireIdleGames drops games nobody has touched for the configured idle TTL.
func (m *Module) expireIdleGames(ctx context.Context) int {
	if m.config.Games.IdleTTL <= 0 {
		return 0
	}
	n, err := m.repo.DeleteIdleGames(ctx, m.now().Add(-m.config.Games.IdleTTL))
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to expire idle games", "error", err)
		return 0
	}
	if n > 0 {
		m.logger.InfoContext(ctx, "Expired idle games", "count", n)
	}
	return n
}

// Close stops the scorecard module.
func (m *Module) Close() error {
	m.logger.Info("Stopping scorecard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.requestRouter != nil {
		if err := m.requestRouter.Stop(); err != nil {
			m.logger.Error("Error stopping scorecard request router", "error", err)
			return fmt.Errorf("error stopping request router: %w", err)
		}
	}

	m.logger.Info("Scorecard module stopped")
	return nil
}
