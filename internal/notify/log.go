package notify

import (
	"context"

	"go.uber.org/zap"
)

type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notification) {
	if l.Log == nil {
		return
	}
	l.Log.Info("notification",
		zap.String("kind", string(n.Kind)),
		zap.String("title", n.Title),
		zap.String("product_id", n.ProductID),
		zap.String("session", n.Session),
	)
}
