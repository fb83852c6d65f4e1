// Package events defines the practice event contract and an in-process
// emitter. The lifecycle engine publishes a "practiceFinished" event
// after a practice is durably closed; delivery is fire-and-forget from
// the engine's perspective, and handler failures surface only in logs.
package events
