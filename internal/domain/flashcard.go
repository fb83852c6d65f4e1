package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CatalogFlashcard is the shape of a flashcard as served by the upstream
// flashcard catalog. A practice embeds an immutable copy of each catalog
// flashcard at creation time, so later catalog edits never affect an
// ongoing practice.
type CatalogFlashcard struct {
	Type             string   `json:"type"`
	User             string   `json:"user"`
	TopicID          string   `json:"topicId"`
	TopicCode        string   `json:"topicCode"`
	Question         string   `json:"question"`
	Options          []string `json:"options"`
	RightAnswerIndex int      `json:"rightAnswerIndex"`
	ID               string   `json:"id,omitempty"`
}

// PracticeFlashcard is a practice-scoped copy of a catalog flashcard
// tracking the user's answer progress. The content copy is immutable;
// only the wrong-answer counter and the correct-answer timestamp change,
// and once the timestamp is set the record is frozen.
type PracticeFlashcard struct {
	ID                  uuid.UUID       `json:"id"`
	PracticeID          uuid.UUID       `json:"practiceId"`
	Content             json.RawMessage `json:"originalFlashcard"`
	NumWrongAnswers     int             `json:"numWrongAnswers,omitempty"`
	CorrectlyAnsweredAt string          `json:"correctlyAnsweredAt,omitempty"`
	CreatedAt           time.Time       `json:"-"`
	UpdatedAt           time.Time       `json:"-"`
}

// NewPracticeFlashcard creates a practice flashcard embedding a copy of
// the given catalog flashcard. Returns an error if validation fails.
func NewPracticeFlashcard(practiceID uuid.UUID, card CatalogFlashcard) (*PracticeFlashcard, error) {
	content, err := json.Marshal(card)
	if err != nil {
		return nil, ErrFlashcardContentInvalid
	}

	now := time.Now().UTC()
	flashcard := &PracticeFlashcard{
		ID:         uuid.New(),
		PracticeID: practiceID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := flashcard.Validate(); err != nil {
		return nil, err
	}

	return flashcard, nil
}

// Validate checks if the PracticeFlashcard has valid data.
func (f *PracticeFlashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if f.PracticeID == uuid.Nil {
		return ErrFlashcardPracticeIDEmpty
	}

	if len(f.Content) == 0 {
		return ErrFlashcardContentEmpty
	}

	var js json.RawMessage
	if err := json.Unmarshal(f.Content, &js); err != nil {
		return ErrFlashcardContentInvalid
	}

	return nil
}

// IsAnswered reports whether the flashcard has been answered correctly.
func (f *PracticeFlashcard) IsAnswered() bool {
	return f.CorrectlyAnsweredAt != ""
}

// Answer records an answer attempt. A correct answer stamps the
// correct-answer time and makes the record terminal; a wrong answer
// increments the wrong-answer counter and leaves the flashcard open for
// a future correct attempt.
// Returns ErrFlashcardAlreadyAnswered if the flashcard is already terminal.
func (f *PracticeFlashcard) Answer(isCorrect bool, now time.Time) error {
	if f.IsAnswered() {
		return ErrFlashcardAlreadyAnswered
	}

	if isCorrect {
		f.CorrectlyAnsweredAt = AnswerTimestamp(now)
	} else {
		f.NumWrongAnswers++
	}
	f.UpdatedAt = now.UTC()

	return nil
}

// CatalogContent decodes the embedded catalog flashcard copy.
func (f *PracticeFlashcard) CatalogContent() (CatalogFlashcard, error) {
	var card CatalogFlashcard
	if err := json.Unmarshal(f.Content, &card); err != nil {
		return CatalogFlashcard{}, ErrFlashcardContentInvalid
	}
	return card, nil
}
