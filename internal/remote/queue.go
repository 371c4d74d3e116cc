package remote

import (
	"io"

	"github.com/charmbracelet/log"
)

// DefaultQueueSize is the number of commands buffered between frames.
const DefaultQueueSize = 32

// Queue hands commands from producer goroutines to the frame loop.
// Push may be called from any goroutine; Drain only from the frame loop.
type Queue struct {
	ch     chan Command
	logger *log.Logger

	last    float64 // Timestamp of the last accepted jump
	hasLast bool
}

// NewQueue creates a queue buffering up to size commands.
func NewQueue(size int, logger *log.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Queue{
		ch:     make(chan Command, size),
		logger: logger,
	}
}

// Push offers a command without blocking. It reports false when the
// buffer is full and the command was dropped.
func (q *Queue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		q.logger.Warn("remote queue full, dropping command", "jump_id", c.JumpID)
		return false
	}
}

// Drain empties the queue and returns how many new jumps arrived.
// A jump counts only if its timestamp is newer than the last one accepted,
// so repeated and late commands are ignored.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case c := <-q.ch:
			if q.accept(c) {
				n++
			}
		default:
			return n
		}
	}
}

func (q *Queue) accept(c Command) bool {
	if !c.Jump {
		return false
	}
	if q.hasLast && c.Timestamp <= q.last {
		q.logger.Debug("ignoring duplicate remote command", "timestamp", c.Timestamp, "jump_id", c.JumpID)
		return false
	}
	q.last, q.hasLast = c.Timestamp, true
	return true
}
