package scorecardservice

import (
	"context"
	"errors"
	"fmt"

	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/infrastructure/parsers"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/results"
	"github.com/Black-And-White-Club/bowl-bot/pkg/bowling"
	"github.com/google/uuid"
)

// ImportSummary is the outcome of a scorecard import. Rejected cells are left empty in
// the players' scorecards.
type ImportSummary struct {
	ImportID uuid.UUID                        `json:"import_id"`
	FileName string                           `json:"file_name"`
	Players  []scorecardtypes.PlayerScorecard `json:"players"`
	Rejected []scorecardtypes.RejectedBall    `json:"rejected"`
}

// ImportScorecard parses the file and enters every ball cell through the input gate in
// the order a bowler would type them.
func (s *ScorecardService) ImportScorecard(ctx context.Context, fileName string, data []byte) (ImportResult, error) {
	importID := uuid.New()
	return withTelemetry(s, ctx, "ImportScorecard", importID, func(ctx context.Context) (ImportResult, error) {
		fail := func(code, reason string) (ImportResult, error) {
			return results.FailureResult[ImportSummary](Failure{Code: code, Reason: reason}), nil
		}

		if len(data) == 0 {
			return fail(CodeInvalidRequest, "file is empty")
		}
		if len(data) > MaxImportBytes {
			return fail(CodeInvalidRequest, fmt.Sprintf("file is larger than %d bytes", MaxImportBytes))
		}

		parser, err := s.parsers.GetParser(fileName)
		if err != nil {
			if errors.Is(err, parsers.ErrUnsupportedFile) {
				return fail(CodeUnsupportedFile, err.Error())
			}
			return ImportResult{}, err
		}

		parsed, err := parser.Parse(data, fileName)
		if err != nil {
			return fail(CodeInvalidRequest, err.Error())
		}
		if len(parsed.Players) > MaxPlayers {
			return fail(CodeInvalidRequest, fmt.Sprintf("at most %d players per scorecard", MaxPlayers))
		}

		summary := ImportSummary{
			ImportID: importID,
			FileName: fileName,
			Players:  make([]scorecardtypes.PlayerScorecard, 0, len(parsed.Players)),
			Rejected: []scorecardtypes.RejectedBall{},
		}

		for _, row := range parsed.Players {
			frames, rejected := gateRow(row)
			summary.Rejected = append(summary.Rejected, rejected...)
			for _, r := range rejected {
				s.metrics.RecordBallRejected(ctx, r.Frame, r.Ball)
			}

			card := scorecardtypes.NewPlayerScorecard(uuid.Nil, row.Name, frames)
			s.metrics.RecordGameScored(ctx, card.Complete(), card.Running)
			summary.Players = append(summary.Players, card)
		}

		s.logger.InfoContext(ctx, "Scorecard imported",
			attr.String("file_name", fileName),
			attr.Int("players", len(summary.Players)),
			attr.Int("rejected", len(summary.Rejected)),
		)
		return results.SuccessResult[ImportSummary, Failure](summary), nil
	})
}

// gateRow enters the cells of one row ball by ball.
func gateRow(row parsers.PlayerRow) (bowling.Frames, []scorecardtypes.RejectedBall) {
	var frames bowling.Frames
	var rejected []scorecardtypes.RejectedBall

	for cell, value := range row.Cells {
		if value == "" {
			continue
		}
		frame, ball := parsers.Position(cell)
		next, err := bowling.EnterBall(frames, frame, ball, value)
		if err != nil {
			rejected = append(rejected, scorecardtypes.RejectedBall{
				Player: row.Name,
				Row:    row.Row,
				Frame:  frame,
				Ball:   ball,
				Value:  value,
				Reason: err.Error(),
			})
			continue
		}
		frames = next
	}
	return frames, rejected
}
