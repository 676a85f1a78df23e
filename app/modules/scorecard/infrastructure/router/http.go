package scorecardrouter

import (
	scorecardhandlers "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/handlers"
	bowljwt "github.com/Black-And-White-Club/bowl-bot/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// HTTPConfig carries the settings of the scorecard HTTP routes.
type HTTPConfig struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// RegisterRoutes mounts the scorecard API under /api. Reads are public; creating games
// and entering balls go through the bearer check when tokens is set.
func RegisterRoutes(r chi.Router, handlers scorecardhandlers.Handlers, cfg HTTPConfig, tokens bowljwt.Service) {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 20
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 40
	}
	limiter := scorecardhandlers.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(scorecardhandlers.CORSMiddleware(cfg.AllowedOrigins))
		r.Use(scorecardhandlers.RateLimitMiddleware(limiter))

		r.Route("/scorecards", func(r chi.Router) {
			r.Post("/compute", handlers.HandleHTTPCompute)
			r.Post("/check", handlers.HandleHTTPCheck)
			r.Post("/import", handlers.HandleHTTPImport)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/{gameID}", handlers.HandleHTTPGetGame)

			r.Group(func(r chi.Router) {
				r.Use(scorecardhandlers.BearerAuthMiddleware(tokens))
				r.Post("/", handlers.HandleHTTPCreateGame)
				r.Post("/{gameID}/players/{playerID}/balls", handlers.HandleHTTPEnterBall)
			})
		})
	})
}
