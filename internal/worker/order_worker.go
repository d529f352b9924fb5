package worker

import (
	"context"
	"log/slog"

	"ridewatch/internal/engine"
	"ridewatch/internal/source"
)

// OrderWorker drains the message queue and runs each message through the
// matching engine, one message to completion at a time.
type OrderWorker struct {
	engine *engine.Engine
	queue  *source.Queue
}

func NewOrderWorker(eng *engine.Engine, queue *source.Queue) *OrderWorker {
	return &OrderWorker{engine: eng, queue: queue}
}

func (w *OrderWorker) Start(ctx context.Context) {
	slog.Info("starting order worker")

	for {
		select {
		case <-ctx.Done():
			slog.Info("order worker stopped")
			return
		case raw := <-w.queue.Messages():
			w.engine.ProcessOrder(ctx, raw)
		}
	}
}
