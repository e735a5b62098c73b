package domain

import "errors"

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrNoActiveMatch     = errors.New("no active match for participant")
	ErrAlreadyMatched    = errors.New("participant already in a match")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrMatchFinished     = errors.New("match already finished")
)
