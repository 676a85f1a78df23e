package scorecardservice

import (
	"context"
	"time"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/parsers"
	scorecarddb "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/repositories"
	"github.com/google/uuid"
)

// ------------------------
// Fake Repository
// ------------------------

// FakeRepository provides a programmable stub for scorecarddb.Repository.
type FakeRepository struct {
	trace []string

	CreateGameFunc         func(ctx context.Context, game scorecardtypes.Game) error
	GetGameFunc            func(ctx context.Context, gameID uuid.UUID) (scorecardtypes.Game, error)
	UpdatePlayerFramesFunc func(ctx context.Context, gameID, playerID uuid.UUID, fn scorecarddb.UpdateFunc) (scorecardtypes.Game, error)
	DeleteIdleGamesFunc    func(ctx context.Context, idleSince time.Time) (int, error)

	LastCreated *scorecardtypes.Game
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) CreateGame(ctx context.Context, game scorecardtypes.Game) error {
	f.record("CreateGame")
	f.LastCreated = &game
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, game)
	}
	return nil
}

func (f *FakeRepository) GetGame(ctx context.Context, gameID uuid.UUID) (scorecardtypes.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return scorecardtypes.Game{}, scorecarddb.ErrGameNotFound
}

func (f *FakeRepository) UpdatePlayerFrames(ctx context.Context, gameID, playerID uuid.UUID, fn scorecarddb.UpdateFunc) (scorecardtypes.Game, error) {
	f.record("UpdatePlayerFrames")
	if f.UpdatePlayerFramesFunc != nil {
		return f.UpdatePlayerFramesFunc(ctx, gameID, playerID, fn)
	}
	return scorecardtypes.Game{}, scorecarddb.ErrGameNotFound
}

func (f *FakeRepository) DeleteIdleGames(ctx context.Context, idleSince time.Time) (int, error) {
	f.record("DeleteIdleGames")
	if f.DeleteIdleGamesFunc != nil {
		return f.DeleteIdleGamesFunc(ctx, idleSince)
	}
	return 0, nil
}

var _ scorecarddb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Parsers
// ------------------------

// FakeParser returns a canned scorecard.
type FakeParser struct {
	ParseFunc func(fileData []byte, fileName string) (*parsers.ParsedScorecard, error)
}

func (p *FakeParser) Parse(fileData []byte, fileName string) (*parsers.ParsedScorecard, error) {
	if p.ParseFunc != nil {
		return p.ParseFunc(fileData, fileName)
	}
	return &parsers.ParsedScorecard{}, nil
}

// FakeParserFactory hands out Parser, or Err when set.
type FakeParserFactory struct {
	Parser parsers.Parser
	Err    error
}

func (f *FakeParserFactory) GetParser(string) (parsers.Parser, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Parser, nil
}

var _ ParserFactory = (*FakeParserFactory)(nil)
