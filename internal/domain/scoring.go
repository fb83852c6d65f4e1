package domain

import "math"

// ComputePracticeScore calculates the final score of a practice from its
// full flashcard set, as a rounded 0-100 percentage.
//
// A flashcard counts against the score if it ever received a wrong
// answer, regardless of whether it was eventually answered correctly:
//
//	score = round(100 * (numCards - numCardsEverWrong) / numCards)
//
// An earlier revision scored the plain correct/total ratio instead; the
// any-wrong-disqualifies formula is the authoritative one.
// Returns 0 for an empty flashcard set.
func ComputePracticeScore(flashcards []*PracticeFlashcard) int {
	if len(flashcards) == 0 {
		return 0
	}

	everWrong := 0
	for _, fc := range flashcards {
		if fc.NumWrongAnswers > 0 {
			everWrong++
		}
	}

	ratio := float64(len(flashcards)-everWrong) / float64(len(flashcards))

	return int(math.Round(ratio * 100))
}

// ComputePracticeStats calculates the statistics of a completed practice:
// the total flashcard count, the sum of wrong answers across all
// flashcards, and the mean wrong-answer count per flashcard (0 for an
// empty set).
func ComputePracticeStats(flashcards []*PracticeFlashcard) PracticeStats {
	numCards := len(flashcards)

	totalWrong := 0
	for _, fc := range flashcards {
		totalWrong += fc.NumWrongAnswers
	}

	averageAttempts := 0.0
	if numCards > 0 {
		averageAttempts = float64(totalWrong) / float64(numCards)
	}

	return PracticeStats{
		AverageAttempts:   averageAttempts,
		TotalWrongAnswers: totalWrong,
		NumCards:          numCards,
	}
}
