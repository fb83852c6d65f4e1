// Package domain defines the core business entities of the practice
// service: practices, their per-practice flashcard copies, and the
// scoring and statistics rules applied when a practice closes.
package domain
