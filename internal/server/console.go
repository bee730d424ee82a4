package server

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/replicate/request-inspector/internal/inspect"
)

// Console prints each inspected request as indented JSON. A nil *Console
// prints nothing.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	logger *zap.Logger
}

func NewConsole(w io.Writer, logger *zap.Logger) *Console {
	return &Console{
		w:      w,
		logger: logger.Named("console"),
	}
}

func (c *Console) Print(pr *inspect.ParsedRequest) {
	if c == nil {
		return
	}
	log := c.logger.Sugar()
	bs, err := encodeJSON(pr, "  ")
	if err != nil {
		log.Errorw("failed to marshal request", "error", err)
		return
	}

	// One write per record so concurrent requests never interleave
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.Write(bs); err != nil {
		log.Errorw("failed to write request to console", "error", err)
	}
}
