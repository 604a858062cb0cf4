package util

import "errors"

var (
	ErrPermissionDenied     = errors.New("permission denied")
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrInvalidVideoNumber   = errors.New("video number must be between 1 and 4")
	ErrVideoLocked          = errors.New("finish the previous video to unlock this one")
	ErrInvalidPlayback      = errors.New("playback position is invalid")
	ErrVideosIncomplete     = errors.New("all four videos must be completed before the quiz")
	ErrInvalidStep          = errors.New("step must be between 1 and 5")
	ErrWrongPhase           = errors.New("action not available in the current onboarding step")
	ErrInvalidQuestionIndex = errors.New("question is not reachable yet")
	ErrInvalidOption        = errors.New("answer option out of range")
	ErrAnswerRequired       = errors.New("select an answer before continuing")
	ErrQuizIncomplete       = errors.New("every question needs an answer before submitting")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrQuizNotSubmitted     = errors.New("quiz has not been submitted")
	ErrQuizNotPassed        = errors.New("quiz not passed")
	ErrQuizPassed           = errors.New("quiz already passed")
	ErrCommitmentIncomplete = errors.New("both acknowledgements, the mobile question and a signature are required")
	ErrInvalidSignature     = errors.New("signature image is invalid")
	ErrAlreadySigned        = errors.New("commitment already signed")
	ErrStatusConflict       = errors.New("application is no longer in onboarding")
)
