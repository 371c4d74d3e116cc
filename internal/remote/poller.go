package remote

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Poll intervals while a run is in progress and while it is not.
const (
	ActiveInterval = 50 * time.Millisecond
	IdleInterval   = 200 * time.Millisecond
)

// FilePoller watches a command file written by a remote controller.
type FilePoller struct {
	path   string
	queue  *Queue
	logger *log.Logger
	active atomic.Bool

	lastSeen float64
}

// NewFilePoller creates a poller feeding q from the file at path.
func NewFilePoller(path string, q *Queue, logger *log.Logger) *FilePoller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FilePoller{path: path, queue: q, logger: logger}
}

// SetActive switches between the fast and the slow poll interval.
// Safe to call from any goroutine.
func (p *FilePoller) SetActive(active bool) {
	p.active.Store(active)
}

func (p *FilePoller) interval() time.Duration {
	if p.active.Load() {
		return ActiveInterval
	}
	return IdleInterval
}

// Run polls until ctx is done. Missing or half-written files are skipped.
func (p *FilePoller) Run(ctx context.Context) error {
	p.logger.Info("polling remote commands", "path", p.path)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			p.Poll()
			timer.Reset(p.interval())
		}
	}
}

// Poll reads the command file once and queues a jump that has not been seen yet.
func (p *FilePoller) Poll() {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Debug("cannot read command file", "path", p.path, "error", err)
		}
		return
	}

	c, err := Decode(data)
	if err != nil {
		p.logger.Debug("skipping unreadable command file", "path", p.path, "error", err)
		return
	}

	if !c.Jump || c.Timestamp == p.lastSeen {
		return
	}
	p.lastSeen = c.Timestamp
	p.queue.Push(c)
}
