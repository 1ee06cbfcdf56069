package domain

import "time"

// FlagReport is a rep's annotation that an answer looks wrong.
// Flags are handed to a human reviewer and never affect ranking.
type FlagReport struct {
	// ID is a unique identifier for the report.
	ID string

	// AnswerID is the flagged answer.
	AnswerID int64

	// QuestionID is the question the answer belongs to.
	QuestionID int64

	// Reason is free text from the rep.
	Reason string

	// CreatedAt is when the flag was raised.
	CreatedAt time.Time
}
