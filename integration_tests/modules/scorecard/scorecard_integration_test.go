package scorecard_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/Black-And-White-Club/bowl-bot/app"
	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/config"
	"github.com/Black-And-White-Club/bowl-bot/integration_tests/containers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app *app.App
	nc  *nats.Conn
	cfg *config.Config
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping NATS integration test in short mode")
	}

	ctx := context.Background()
	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = natsContainer.Terminate(context.Background()) })

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg.NATS.URL = natsURL
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Observability.MetricsAddress = ""
	cfg.Observability.LogLevel = "error"

	a := app.NewApp()
	require.NoError(t, a.Initialize(ctx, cfg))

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = a.Run(runCtx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = a.Close()
	})

	select {
	case <-a.Router.Running():
	case <-time.After(10 * time.Second):
		t.Fatal("router did not start")
	}

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	return &testEnv{app: a, nc: nc, cfg: cfg}
}

func TestComputeRequestReply(t *testing.T) {
	env := setup(t)

	body, err := json.Marshal(scorecardevents.ScorecardComputeRequestPayloadV1{
		Players: []scorecardtypes.PlayerSnapshot{
			{Name: "Ana", Frames: [][]string{{"X"}, {"X"}, {"X"}, {"X"}, {"X"}, {"X"}, {"X"}, {"X"}, {"X"}, {"X", "X", "X"}}},
			{Name: "Ben", Frames: [][]string{{"9", "-"}}},
		},
	})
	require.NoError(t, err)

	var resp scorecardevents.ScorecardComputeResponsePayloadV1
	require.Eventually(t, func() bool {
		msg, err := env.nc.Request(env.cfg.NATS.RequestSubject, body, 2*time.Second)
		if err != nil {
			return false
		}
		return json.Unmarshal(msg.Data, &resp) == nil
	}, 15*time.Second, 250*time.Millisecond)

	require.Empty(t, resp.Error)
	require.Len(t, resp.Players, 2)
	require.NotNil(t, resp.Players[0].Total)
	assert.Equal(t, 300, *resp.Players[0].Total)
	assert.Nil(t, resp.Players[1].Total)
	assert.Equal(t, 9, resp.Players[1].Running)

	msg, err := env.nc.Request(env.cfg.NATS.RequestSubject, []byte("{"), 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	assert.Contains(t, resp.Error, "malformed request")
}

func TestBallEnteredEvent(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	created, err := env.app.Modules.Scorecard.ScorecardService.CreateGame(ctx, []string{"Ana"})
	require.NoError(t, err)
	require.True(t, created.IsSuccess())
	game := created.Success

	computed := make(chan *nats.Msg, 1)
	sub, err := env.nc.ChanSubscribe(scorecardevents.ScoresComputedV1, computed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	require.NoError(t, env.nc.Flush())

	body, err := json.Marshal(scorecardevents.BallEnteredPayloadV1{
		GameID:   game.GameID,
		PlayerID: game.Players[0].PlayerID,
		Frame:    1,
		Ball:     1,
		Value:    "7",
	})
	require.NoError(t, err)
	require.NoError(t, env.app.EventBus.Publish(scorecardevents.BallEnteredV1, message.NewMessage(watermill.NewUUID(), body)))

	select {
	case msg := <-computed:
		var got scorecardevents.ScoresComputedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, game.GameID, got.GameID)
		assert.Equal(t, "7", got.Scorecard.Balls[0][0])
		assert.Equal(t, 7, got.Scorecard.Running)
	case <-time.After(10 * time.Second):
		t.Fatal("no scores computed event")
	}
}
