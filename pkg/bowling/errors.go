package bowling

import "errors"

var (
	ErrTooManyFrames   = errors.New("too many frames")
	ErrTooManyBalls    = errors.New("too many balls in frame")
	ErrFrameOutOfRange = errors.New("frame out of range")
	ErrBallOutOfRange  = errors.New("ball out of range")
	ErrBallDisabled    = errors.New("ball is disabled")
	ErrIllegalBall     = errors.New("illegal ball")
)
