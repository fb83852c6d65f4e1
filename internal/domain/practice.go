package domain

import (
	"time"

	"github.com/google/uuid"
)

// PracticeType identifies the kind of quiz a practice runs.
type PracticeType string

// Supported practice types. This is a closed set: any other value is
// rejected as a validation failure.
const (
	PracticeTypeOptions PracticeType = "options"
	PracticeTypeGaps    PracticeType = "gaps"
)

// IsValid reports whether the practice type is one of the supported types.
func (t PracticeType) IsValid() bool {
	switch t {
	case PracticeTypeOptions, PracticeTypeGaps:
		return true
	default:
		return false
	}
}

// PracticeStats holds the statistics computed when a practice closes.
// Stats are embedded in the practice record, never addressed on their own.
type PracticeStats struct {
	AverageAttempts   float64 `json:"averageAttempts"`
	TotalWrongAnswers int     `json:"totalWrongAnswers"`
	NumCards          int     `json:"numCards"`
}

// Practice represents one quiz session on a topic, bounded by a start
// date and, once every flashcard has been answered correctly, a finish
// date. A practice with no finish date is "ongoing"; at most one ongoing
// practice may exist per topic at any time.
type Practice struct {
	ID         uuid.UUID      `json:"id"`
	TopicID    string         `json:"topicId"`
	User       string         `json:"user"`
	Type       PracticeType   `json:"type"`
	StartedOn  string         `json:"startedOn"`
	FinishedOn string         `json:"finishedOn,omitempty"`
	Score      *int           `json:"score,omitempty"`
	Stats      *PracticeStats `json:"stats,omitempty"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}

// NewPractice creates a new open practice on the given topic for the
// given user. The start date is the current calendar day in the
// reference time zone. Returns an error if validation fails.
func NewPractice(topicID, user string, practiceType PracticeType) (*Practice, error) {
	now := time.Now().UTC()
	practice := &Practice{
		ID:        uuid.New(),
		TopicID:   topicID,
		User:      user,
		Type:      practiceType,
		StartedOn: CalendarDay(now),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := practice.Validate(); err != nil {
		return nil, err
	}

	return practice, nil
}

// Validate checks if the Practice has valid data.
func (p *Practice) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPracticeIDEmpty
	}

	if p.TopicID == "" {
		return ErrPracticeTopicEmpty
	}

	if p.User == "" {
		return ErrPracticeUserEmpty
	}

	if !p.Type.IsValid() {
		return ErrPracticeTypeInvalid
	}

	return nil
}

// IsFinished reports whether the practice has been closed.
func (p *Practice) IsFinished() bool {
	return p.FinishedOn != ""
}

// Close performs the one-time open-to-closed transition: it sets the
// finish date to the current calendar day and computes the score and
// statistics from the full flashcard set of the practice.
// Returns ErrPracticeAlreadyFinished if the practice is already closed.
func (p *Practice) Close(flashcards []*PracticeFlashcard, now time.Time) error {
	if p.IsFinished() {
		return ErrPracticeAlreadyFinished
	}

	score := ComputePracticeScore(flashcards)
	stats := ComputePracticeStats(flashcards)

	p.FinishedOn = CalendarDay(now)
	p.Score = &score
	p.Stats = &stats
	p.UpdatedAt = now.UTC()

	return nil
}
