package scorecardhandlers

import (
	"context"
	"sync"

	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FakeService is a programmable stub for scorecardservice.Service.
type FakeService struct {
	trace []string

	ComputeScorecardsFunc func(ctx context.Context, players []scorecardtypes.PlayerSnapshot) (scorecardservice.ComputeResult, error)
	CheckBallFunc         func(ctx context.Context, req scorecardservice.CheckBallRequest) scorecardservice.CheckBallResponse
	ImportScorecardFunc   func(ctx context.Context, fileName string, data []byte) (scorecardservice.ImportResult, error)
	CreateGameFunc        func(ctx context.Context, names []string) (scorecardservice.GameResult, error)
	GetGameFunc           func(ctx context.Context, gameID uuid.UUID) (scorecardservice.GameResult, error)
	EnterBallFunc         func(ctx context.Context, req scorecardservice.EnterBallRequest) (scorecardservice.EnterBallResult, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) ComputeScorecards(ctx context.Context, players []scorecardtypes.PlayerSnapshot) (scorecardservice.ComputeResult, error) {
	f.record("ComputeScorecards")
	if f.ComputeScorecardsFunc != nil {
		return f.ComputeScorecardsFunc(ctx, players)
	}
	return scorecardservice.ComputeResult{}, nil
}

func (f *FakeService) CheckBall(ctx context.Context, req scorecardservice.CheckBallRequest) scorecardservice.CheckBallResponse {
	f.record("CheckBall")
	if f.CheckBallFunc != nil {
		return f.CheckBallFunc(ctx, req)
	}
	return scorecardservice.CheckBallResponse{}
}

func (f *FakeService) ImportScorecard(ctx context.Context, fileName string, data []byte) (scorecardservice.ImportResult, error) {
	f.record("ImportScorecard")
	if f.ImportScorecardFunc != nil {
		return f.ImportScorecardFunc(ctx, fileName, data)
	}
	return scorecardservice.ImportResult{}, nil
}

func (f *FakeService) CreateGame(ctx context.Context, names []string) (scorecardservice.GameResult, error) {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, names)
	}
	return scorecardservice.GameResult{}, nil
}

func (f *FakeService) GetGame(ctx context.Context, gameID uuid.UUID) (scorecardservice.GameResult, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return scorecardservice.GameResult{}, nil
}

func (f *FakeService) EnterBall(ctx context.Context, req scorecardservice.EnterBallRequest) (scorecardservice.EnterBallResult, error) {
	f.record("EnterBall")
	if f.EnterBallFunc != nil {
		return f.EnterBallFunc(ctx, req)
	}
	return scorecardservice.EnterBallResult{}, nil
}

var _ scorecardservice.Service = (*FakeService)(nil)

// FakePublisher records published messages per topic.
type FakePublisher struct {
	mu        sync.Mutex
	Published map[string][]*message.Message
	Err       error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{Published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Published[topic] = append(p.Published[topic], msgs...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }
