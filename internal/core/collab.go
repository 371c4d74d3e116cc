package core

import "context"

// BestScoreStore persists the best score for one player of one game.
// Get is called once when a game is built, Set on every new best.
type BestScoreStore interface {
	Get() (int, error)
	Set(score int) error
}

// Leaderboard accepts completed scores for a signed-in identity.
type Leaderboard interface {
	IsAuthenticated() bool
	SubmitScore(ctx context.Context, score int) (SubmitResult, error)
}

// SubmitResult describes where a submitted score landed.
type SubmitResult struct {
	Rank int // 1-based position among all submitted scores
	Best int // Best score recorded for the identity
}
