package parsers

import "errors"

// BallCells is the number of ball columns in a scorecard row: two per frame for frames
// 1-9 and three for the tenth.
const BallCells = 21

var (
	// ErrUnsupportedFile is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoPlayers is returned when no row names a player.
	ErrNoPlayers = errors.New("no player rows found")
)

// Parser reads a scorecard file.
type Parser interface {
	// Parse reads raw file bytes. fileName is only used in error messages.
	Parse(fileData []byte, fileName string) (*ParsedScorecard, error)
}

// ParsedScorecard is the raw content of an imported scorecard.
type ParsedScorecard struct {
	Players []PlayerRow
}

// PlayerRow is one player's name and ball cells as typed in the file.
type PlayerRow struct {
	// Row is the 1-based row number in the file.
	Row   int
	Name  string
	Cells [BallCells]string
}

// Position maps a cell index to its 1-based frame and ball.
func Position(cell int) (frame, ball int) {
	if cell >= 18 {
		return 10, cell - 17
	}
	return cell/2 + 1, cell%2 + 1
}
