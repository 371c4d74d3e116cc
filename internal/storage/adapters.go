package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BestScores is the best-score store of one player in one game.
type BestScores struct {
	store  *Store
	gameID string
	player string
}

// BestScores returns a best-score store bound to gameID and player.
func (s *Store) BestScores(gameID, player string) *BestScores {
	return &BestScores{store: s, gameID: gameID, player: player}
}

// Get returns the stored best score.
func (b *BestScores) Get() (int, error) {
	return b.store.BestScore(b.gameID, b.player)
}

// Set records a new best score.
func (b *BestScores) Set(score int) error {
	return b.store.SetBestScore(b.gameID, b.player, score)
}

// Leaderboard ranks a named player's runs against everyone else's bests.
// An empty player name means nobody is signed in.
type Leaderboard struct {
	store  *Store
	gameID string
	player string
}

// Leaderboard returns a leaderboard bound to gameID and player.
func (s *Store) Leaderboard(gameID, player string) *Leaderboard {
	return &Leaderboard{store: s, gameID: gameID, player: player}
}

// IsAuthenticated reports whether scores can be attributed to a player.
func (l *Leaderboard) IsAuthenticated() bool {
	return l.player != ""
}

// SubmitScore records score for the player and reports where it ranks.
func (l *Leaderboard) SubmitScore(ctx context.Context, score int) (core.SubmitResult, error) {
	if !l.IsAuthenticated() {
		return core.SubmitResult{}, fmt.Errorf("storage: cannot submit score: no player")
	}
	if err := l.store.setBestScore(ctx, l.gameID, l.player, score); err != nil {
		return core.SubmitResult{}, err
	}
	best, err := l.store.bestScore(ctx, l.gameID, l.player)
	if err != nil {
		return core.SubmitResult{}, err
	}
	rank, err := l.store.rank(ctx, l.gameID, score)
	if err != nil {
		return core.SubmitResult{}, err
	}
	return core.SubmitResult{Rank: rank, Best: best}, nil
}

var (
	_ core.BestScoreStore = (*BestScores)(nil)
	_ core.Leaderboard    = (*Leaderboard)(nil)
)
