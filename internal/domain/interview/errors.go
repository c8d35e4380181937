package interview

import "errors"

var (
	// ErrSubmission indicates the idea submission failed; no thread was created.
	ErrSubmission = errors.New("idea submission failed")
	// ErrAnswer indicates an answer round trip failed; the caller's state is
	// unchanged and the same answer may be retried.
	ErrAnswer = errors.New("answer submission failed")
	// ErrIdeaLength indicates the idea text is outside the accepted length band.
	ErrIdeaLength = errors.New("idea text outside accepted length band")
	// ErrAnswerTooShort rejects near-empty answers before any round trip.
	ErrAnswerTooShort = errors.New("answer too short")
	// ErrInterviewComplete rejects answers after the terminal transition.
	ErrInterviewComplete = errors.New("interview already complete")
)
