package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncConsoleHook writes formatted entries from a background goroutine. Entries are dropped
// when the queue is full so logging never blocks a request.
type AsyncConsoleHook struct {
	out     io.Writer
	lines   chan []byte
	done    chan struct{}
	wg      sync.WaitGroup
	closeMu sync.Once
}

func NewAsyncConsoleHook(out io.Writer, queueSize int) *AsyncConsoleHook {
	hook := &AsyncConsoleHook{
		out:   out,
		lines: make(chan []byte, queueSize),
		done:  make(chan struct{}),
	}
	hook.wg.Add(1)
	go hook.run()
	return hook
}

func (h *AsyncConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	select {
	case h.lines <- append([]byte(nil), line...):
	default:
	}
	return nil
}

func (h *AsyncConsoleHook) run() {
	defer h.wg.Done()
	for {
		select {
		case line := <-h.lines:
			_, _ = h.out.Write(line)
		case <-h.done:
			for {
				select {
				case line := <-h.lines:
					_, _ = h.out.Write(line)
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncConsoleHook) Close() {
	h.closeMu.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
}

func (h *AsyncConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
