package audit

import "context"

// Worker drains audit events from a channel into a publisher, decoupling
// resolution latency from the audit sink. Pair it with Chan as the
// resolver's publisher.
type Worker struct {
	sink  Publisher
	inbox <-chan Event
}

func NewWorker(sink Publisher, inbox <-chan Event) *Worker {
	return &Worker{sink: sink, inbox: inbox}
}

// Run consumes events until the context is canceled or the sink fails.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Emit(ctx, event); err != nil {
				return err
			}
		}
	}
}

// Chan is a Publisher that hands events to a Worker's inbox. Emit drops the
// event when the inbox is full rather than stall resolution.
type Chan chan Event

func (c Chan) Emit(_ context.Context, event Event) error {
	select {
	case c <- event:
	default:
	}
	return nil
}
