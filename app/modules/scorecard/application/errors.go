package scorecardservice

// Failure codes carried by Failure payloads. Transports map them to their own status
// vocabulary.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeNotFound        = "not_found"
	CodeIllegalBall     = "illegal_ball"
	CodeUnsupportedFile = "unsupported_file"
)

// Failure is the business failure payload of operations that have no event of their
// own.
type Failure struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

const (
	// MaxPlayers bounds the players of one game or one request.
	MaxPlayers = 8
	// MaxNameLength bounds a player name in runes.
	MaxNameLength = 32
	// MaxImportBytes bounds an imported scorecard file.
	MaxImportBytes = 2 << 20
)
