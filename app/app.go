package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app/eventbus"
	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard"
	scorecardhandlers "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/handlers"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/config"
	bowljwt "github.com/Black-And-White-Club/bowl-bot/pkg/jwt"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// App holds the process wide dependencies and the modules built on them.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Logger        *slog.Logger
	EventBus      eventbus.EventBus
	Router        *message.Router
	HTTPRouter    *chi.Mux
	NATS          *nats.Conn
	Modules       *Modules
}

// Modules holds the application modules.
type Modules struct {
	Scorecard *scorecard.Module
}

// NewApp creates a new App instance.
func NewApp() *App {
	return &App{}
}

// Initialize sets up observability, the event bus, NATS and the modules.
func (app *App) Initialize(ctx context.Context, cfg *config.Config) error {
	app.Config = cfg
	app.Observability = observability.Init(config.ToObsConfig(cfg))
	app.Logger = app.Observability.Logger

	app.Logger.InfoContext(ctx, "Initializing bowl-bot",
		"http_addr", cfg.HTTP.Addr,
		"nats_enabled", cfg.NATS.URL != "",
		"auth_enabled", cfg.JWT.Secret != "",
	)

	natsOpts, err := natsOptions(cfg.NATS)
	if err != nil {
		return err
	}

	app.EventBus, err = eventbus.NewEventBus(ctx, eventbus.Config{
		URL:        cfg.NATS.URL,
		QueueGroup: cfg.NATS.QueueGroup,
		Options:    natsOpts,
	}, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}

	if cfg.NATS.URL != "" {
		app.NATS, err = nats.Connect(cfg.NATS.URL, append([]nats.Option{
			nats.Name(cfg.Observability.ServiceName),
			nats.RetryOnFailedConnect(true),
			nats.ReconnectWait(time.Second),
		}, natsOpts...)...)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
	}

	app.Router, err = message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(app.Logger))
	if err != nil {
		return fmt.Errorf("failed to create Watermill router: %w", err)
	}

	app.HTTPRouter = chi.NewRouter()
	app.HTTPRouter.Use(chimiddleware.RequestID, chimiddleware.Recoverer)
	app.HTTPRouter.Get("/healthz", scorecardhandlers.HandleHealthz)
	if cfg.Observability.MetricsAddress == "" {
		app.HTTPRouter.Handle("/metrics", app.Observability.MetricsHandler())
	}

	var tokens bowljwt.Service
	if cfg.JWT.Secret != "" {
		tokens = bowljwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.DefaultTTL)
	}

	scorecardModule, err := scorecard.NewScorecardModule(
		ctx,
		cfg,
		app.Observability,
		scorecarddb.NewMemoryRepository(),
		app.EventBus,
		app.Router,
		app.NATS,
		app.HTTPRouter,
		tokens,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize scorecard module: %w", err)
	}
	app.Modules = &Modules{Scorecard: scorecardModule}

	return nil
}

// natsOptions builds the connection options shared by the event bus and the request
// subscription. A seed switches the connection to nkey authentication.
func natsOptions(cfg config.NATSConfig) ([]nats.Option, error) {
	if cfg.NKeySeed == "" {
		return nil, nil
	}
	kp, err := nkeys.FromSeed([]byte(cfg.NKeySeed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS public key: %w", err)
	}
	return []nats.Option{nats.Nkey(pub, kp.Sign)}, nil
}

// Close shuts the app down in reverse order of construction.
func (app *App) Close() error {
	var errs []error

	if app.Modules != nil && app.Modules.Scorecard != nil {
		if err := app.Modules.Scorecard.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing router: %w", err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.NATS != nil {
		if err := app.NATS.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("draining NATS: %w", err))
		}
	}

	return errors.Join(errs...)
}
