package parsers

import (
	"fmt"
	"strings"
)

var headerNames = map[string]bool{
	"name":        true,
	"player":      true,
	"playername":  true,
	"player_name": true,
	"bowler":      true,
	"username":    true,
}

// isHeaderRow reports a leading row that names its columns rather than a player.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return headerNames[first] || headerNames[strings.ReplaceAll(first, " ", "")]
}

// parseRows turns sheet rows into player rows. The first column holds the player name
// and the next 21 columns the balls. Rows without a name are skipped.
func parseRows(rows [][]string, fileName string) (*ParsedScorecard, error) {
	start := 0
	if len(rows) > 0 && isHeaderRow(rows[0]) {
		start = 1
	}

	var players []PlayerRow
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		cells := row[1:]
		for len(cells) > BallCells && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}
		if len(cells) > BallCells {
			return nil, fmt.Errorf("%s row %d: %d ball cells, at most %d allowed", fileName, i+1, len(cells), BallCells)
		}

		p := PlayerRow{Row: i + 1, Name: name}
		for j, c := range cells {
			p.Cells[j] = strings.TrimSpace(c)
		}
		players = append(players, p)
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoPlayers)
	}
	return &ParsedScorecard{Players: players}, nil
}
