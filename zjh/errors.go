package zjh

import "errors"

var (
	ErrOutOfTurn         = errors.New("action out of turn")
	ErrNotBetting        = errors.New("no betting in progress")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrRaiseCapReached   = errors.New("raise cap reached")
	ErrTableFull         = errors.New("table is full")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
