package workerpool

import (
	"sync"

	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Pool --dir=. --output=./mocks --filename=pool_mock.go --case=underscore --with-expecter
type Pool interface {
	StartWorkers(n int)
	// Submit never blocks: when the queue is full the task runs on its own goroutine.
	// It returns false once the pool is shut down.
	Submit(task func()) bool
	// Shutdown stops accepting tasks and waits for queued and running ones.
	Shutdown()
}

type pool struct {
	logger   *logrus.Logger
	name     string
	taskChan chan func()

	mu      sync.RWMutex
	closed  bool
	workers int
	wg      sync.WaitGroup
}

func NewPool(logger *logrus.Logger, name string, queueSize int) Pool {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &pool{
		logger:   logger,
		name:     name,
		taskChan: make(chan func(), queueSize),
	}
}

func (p *pool) StartWorkers(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.logger.WithFields(logrus.Fields{"pool": p.name, "workers": n}).Info("starting workers")
	for i := 0; i < n; i++ {
		p.workers++
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.taskChan {
				p.run(task)
			}
		}()
	}
}

func (p *pool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.taskChan <- task:
	default:
		p.logger.WithField("pool", p.name).Warn("task queue is full, running task on a dedicated goroutine")
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(task)
		}()
	}
	return true
}

func (p *pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.taskChan)
	workers := p.workers
	p.mu.Unlock()

	p.logger.WithField("pool", p.name).Info("shutting down workers")
	if workers == 0 {
		for task := range p.taskChan {
			p.run(task)
		}
	}
	p.wg.Wait()
	p.logger.WithField("pool", p.name).Info("workers stopped")
}

func (p *pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(logrus.Fields{"pool": p.name, "panic": r}).Error("task panicked")
		}
	}()
	task()
}
