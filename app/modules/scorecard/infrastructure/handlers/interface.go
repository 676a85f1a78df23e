package scorecardhandlers

import (
	"context"
	"net/http"

	scorecardevents "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/events"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/handlerwrapper"
	"github.com/nats-io/nats.go"
)

// Handlers exposes the scorecard service over HTTP, NATS request/reply and events.
type Handlers interface {
	HandleHTTPCompute(w http.ResponseWriter, r *http.Request)
	HandleHTTPCheck(w http.ResponseWriter, r *http.Request)
	HandleHTTPImport(w http.ResponseWriter, r *http.Request)
	HandleHTTPCreateGame(w http.ResponseWriter, r *http.Request)
	HandleHTTPGetGame(w http.ResponseWriter, r *http.Request)
	HandleHTTPEnterBall(w http.ResponseWriter, r *http.Request)

	HandleComputeRequest(msg *nats.Msg)

	HandleBallEntered(ctx context.Context, payload *scorecardevents.BallEnteredPayloadV1) ([]handlerwrapper.Result, error)
}
