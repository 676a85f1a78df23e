package scorecard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app/eventbus"
	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	scorecardrouter "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/router"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability"
	"github.com/Black-And-White-Club/bowl-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T, httpRouter chi.Router) *Module {
	t.Helper()
	ctx := context.Background()
	obs := observability.NewNoop()

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg.Games.IdleTTL = time.Hour

	bus, err := eventbus.NewEventBus(ctx, eventbus.Config{}, obs.Logger)
	require.NoError(t, err)
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(obs.Logger))
	require.NoError(t, err)

	m, err := NewScorecardModule(ctx, cfg, obs, scorecarddb.NewMemoryRepository(), bus, router, nil, httpRouter, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = m.Close()
		_ = m.ScorecardRouter.Close()
		_ = bus.Close()
	})
	return m
}

func TestModule_ExpireIdleGames(t *testing.T) {
	m := newTestModule(t, nil)
	ctx := context.Background()

	created, err := m.ScorecardService.CreateGame(ctx, []string{"Ana"})
	require.NoError(t, err)
	require.True(t, created.IsSuccess())
	gameID := created.Success.GameID

	assert.Equal(t, 0, m.expireIdleGames(ctx), "fresh game stays")

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, m.expireIdleGames(ctx))

	got, err := m.ScorecardService.GetGame(ctx, gameID)
	require.NoError(t, err)
	require.True(t, got.IsFailure())
	assert.Equal(t, scorecardservice.CodeNotFound, got.Failure.Code)
}

func TestModule_ExpiryDisabled(t *testing.T) {
	m := newTestModule(t, nil)
	m.config.Games.IdleTTL = 0
	m.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	_, err := m.ScorecardService.CreateGame(context.Background(), []string{"Ana"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.expireIdleGames(context.Background()))
}

func TestModule_MountsRoutes(t *testing.T) {
	r := chi.NewRouter()
	newTestModule(t, r)

	req := httptest.NewRequest(http.MethodPost, "/api/scorecards/compute", strings.NewReader(`{"players":[{"name":"Ana","frames":[["X"],["X"],["X"]]}]}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"running":30`)
}

func TestModule_RunStopsWithContext(t *testing.T) {
	m := newTestModule(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { _ = m.Run(ctx, &wg) }()
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("module did not stop")
	}
}

func TestModule_RunReportsRequestRouterFailure(t *testing.T) {
	m := newTestModule(t, nil)
	m.requestRouter = scorecardrouter.NewRequestRouter(nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(context.Background(), &wg) }()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no NATS connection")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	wg.Wait()
}
