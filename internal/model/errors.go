package model

import "errors"

// Errors returned by flownote operations. Validation failures wrap ErrInvalid
// with the message shown to the user.
var (
	ErrInvalid           = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrRewardLocked      = errors.New("reward not reached yet")
	ErrRewardClaimed     = errors.New("reward already claimed")
	ErrTimerRunning      = errors.New("timer is running")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrWeakPassword      = errors.New("password is too weak")
)
