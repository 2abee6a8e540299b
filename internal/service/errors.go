package service

import "errors"

var (
	ErrAlreadySubmitted    = errors.New("already submitted today")
	ErrQuizExpired         = errors.New("quiz is no longer valid for today")
	ErrAttemptCompleted    = errors.New("attempt already completed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)
