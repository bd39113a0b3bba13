package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/logging"
)

// consoleQueueSize is the bounded capacity of pending notices.
const consoleQueueSize = 64

type item struct {
	notice Notice
	flush  chan struct{}
}

// Console prints notices to a writer from a background goroutine. Notify
// enqueues without blocking; when the queue is full the notice is dropped
// and a warning is logged.
type Console struct {
	w      io.Writer
	logger logging.Logger
	items  chan item
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewConsole(w io.Writer, logger logging.Logger) *Console {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Console{
		w:      w,
		logger: logger,
		items:  make(chan item, consoleQueueSize),
	}
	c.wg.Add(1)
	go c.loop()
	return c
}

func (c *Console) Notify(n Notice) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.items <- item{notice: n}:
	default:
		c.logger.Warn(context.Background(), "notice queue full, dropping notice", "kind", n.Kind.String())
	}
}

// Flush waits until every notice queued before the call has been written.
// The terminal calls it before prompting so notices do not interleave with
// the prompt.
func (c *Console) Flush() {
	done := make(chan struct{})
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	c.items <- item{flush: done}
	c.mu.RUnlock()
	<-done
}

// Close drains the queue and stops the goroutine.
func (c *Console) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.items)
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Console) loop() {
	defer c.wg.Done()
	for it := range c.items {
		if it.flush != nil {
			close(it.flush)
			continue
		}
		_, _ = fmt.Fprintf(c.w, "%s %s\n", badge(it.notice.Kind), it.notice.Text)
	}
}

func badge(k Kind) string {
	switch k {
	case KindSuccess:
		return "[ok]"
	case KindInfo:
		return "[i]"
	case KindWarning:
		return "[!]"
	case KindError:
		return "[x]"
	default:
		return "[?]"
	}
}
