package model

import "errors"

var (
	ErrNoPiece          = errors.New("no piece at from square")
	ErrGameFull         = errors.New("game is full")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameOver         = errors.New("game is over")
	ErrNotInGame        = errors.New("not authorized to join this game")
	ErrConnectionExists = errors.New("connection already exists")
)
