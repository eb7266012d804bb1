package apperror

import "errors"

var (
	ErrMalformedCoordinate = errors.New("coordinate must be exactly two digits")
	ErrOutOfRange          = errors.New("coordinate is out of range")
	ErrCellOccupied        = errors.New("cell is already occupied")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrGameFinished        = errors.New("game is already finished")
	ErrInvalidBoardSize    = errors.New("invalid board size")
)
