// Package leaderboard submits finished scores to a remote leaderboard without
// blocking the frame loop. Results come back tagged with the epoch that
// produced them so a game can drop answers that arrive after a reset.
package leaderboard

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DefaultTimeout bounds a single submission.
const DefaultTimeout = 5 * time.Second

// resultBuffer is the number of undelivered results kept before new ones are dropped.
const resultBuffer = 16

// Result is the outcome of one submission.
type Result struct {
	Epoch uint64
	Score int // Score that was submitted
	Rank  int
	Best  int // Player's best on the leaderboard, may exceed Score
	Err   error
}

// Submitter runs leaderboard submissions in the background.
type Submitter struct {
	board   core.Leaderboard
	logger  *log.Logger
	timeout time.Duration
	results chan Result
	wg      sync.WaitGroup
}

// NewSubmitter wraps a leaderboard. A nil logger discards output.
func NewSubmitter(board core.Leaderboard, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Submitter{
		board:   board,
		logger:  logger,
		timeout: DefaultTimeout,
		results: make(chan Result, resultBuffer),
	}
}

// SetTimeout overrides the per-submission timeout.
func (s *Submitter) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Submit starts a submission and returns immediately.
// It returns false when the leaderboard is not signed in and nothing was sent.
func (s *Submitter) Submit(epoch uint64, score int) bool {
	if s.board == nil || !s.board.IsAuthenticated() {
		return false
	}

	issued := time.Now()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		res := Result{Epoch: epoch, Score: score}
		out, err := s.board.SubmitScore(ctx, score)
		if err != nil {
			s.logger.Warn("score submission failed", "score", score, "epoch", epoch, "error", err)
			res.Err = err
		} else {
			res.Rank = out.Rank
			res.Best = out.Best
			s.logger.Info("score submitted", "score", score, "rank", out.Rank, "took", time.Since(issued))
		}

		select {
		case s.results <- res:
		default:
			s.logger.Warn("dropping leaderboard result, nobody is draining", "epoch", epoch)
		}
	}()
	return true
}

// Poll returns every result that has arrived so far without blocking.
func (s *Submitter) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-s.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Wait blocks until all in-flight submissions have finished.
func (s *Submitter) Wait() {
	s.wg.Wait()
}
