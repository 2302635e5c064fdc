package notify

import (
	"context"
	"sync"
)

type recorderKey struct{}

type recorder struct {
	mu  sync.Mutex
	got []Notification
}

// WithRecorder returns a context that collects notifications sent through
// ContextSink while it is in scope.
func WithRecorder(ctx context.Context) context.Context {
	return context.WithValue(ctx, recorderKey{}, &recorder{})
}

// Recorded returns what was collected so far, or nil without a recorder.
func Recorded(ctx context.Context) []Notification {
	rec, ok := ctx.Value(recorderKey{}).(*recorder)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Notification(nil), rec.got...)
}

// ContextSink appends to the recorder carried by ctx, if any.
var ContextSink Notifier = Func(func(ctx context.Context, n Notification) {
	rec, ok := ctx.Value(recorderKey{}).(*recorder)
	if !ok {
		return
	}
	rec.mu.Lock()
	rec.got = append(rec.got, n)
	rec.mu.Unlock()
})
