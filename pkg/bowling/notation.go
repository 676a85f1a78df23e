package bowling

import (
	"fmt"
	"strings"
)

// ParseLine reads the compact notation printed on lane monitors, one whitespace separated
// group per frame, one character per ball: "X 7/ 9- 81 X X X 9/ -- X9/".
func ParseLine(line string) (Frames, error) {
	groups := strings.Fields(line)
	tokens := make([][]string, len(groups))
	for i, g := range groups {
		frame := make([]string, 0, len(g))
		for _, c := range g {
			frame = append(frame, string(c))
		}
		tokens[i] = frame
	}
	f, err := ParseFrames(tokens)
	if err != nil {
		return f, fmt.Errorf("parse line: %w", err)
	}
	return f, nil
}

// FormatLine is the inverse of ParseLine for snapshots whose counts are single digits.
func FormatLine(f Frames) string {
	groups := make([]string, 0, FrameCount)
	for _, frame := range f {
		var sb strings.Builder
		for _, b := range frame {
			if b.IsEmpty() {
				continue
			}
			sb.WriteString(b.String())
		}
		if sb.Len() == 0 {
			break
		}
		groups = append(groups, sb.String())
	}
	return strings.Join(groups, " ")
}
