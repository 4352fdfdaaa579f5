package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Handler[T any] func(ctx context.Context, item T)

// GenericWorker runs size goroutines that feed items from a channel to a
// handler. A panicking handler is logged and the worker keeps going.
type GenericWorker[T any] struct {
	name    string
	size    int
	handler Handler[T]
	log     *logrus.Entry
}

func NewGenericWorker[T any](name string, size int, handler Handler[T], log *logrus.Logger) *GenericWorker[T] {
	if size < 1 {
		size = 1
	}
	return &GenericWorker[T]{
		name:    name,
		size:    size,
		handler: handler,
		log:     log.WithField("worker", name),
	}
}

// Run blocks until items is closed or ctx is done, then waits for handlers
// still in progress.
func (w *GenericWorker[T]) Run(ctx context.Context, items <-chan T) {
	w.log.WithField("size", w.size).Info("worker pool started")

	var wg sync.WaitGroup
	for i := 0; i < w.size; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case item, ok := <-items:
					if !ok {
						return
					}
					w.handle(ctx, item)
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	wg.Wait()

	w.log.Info("worker pool stopped")
}

func (w *GenericWorker[T]) handle(ctx context.Context, item T) {
	defer func() {
		if rec := recover(); rec != nil {
			w.log.WithError(fmt.Errorf("%v", rec)).Error("handler panic")
		}
	}()
	w.handler(ctx, item)
}
