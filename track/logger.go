package track

import "go.uber.org/zap"

// LogObserver forwards lifecycle events to a zap logger at debug level.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver wraps l in an Observer.
func NewLogObserver(l *zap.Logger) *LogObserver {
	return &LogObserver{logger: l}
}

func (o *LogObserver) OnHandleEvent(e Event) {
	o.logger.Debug("handle event",
		zap.String("kind", string(e.Kind)),
		zap.Stringer("op", e.Op),
		zap.Uintptr("addr", e.Addr),
	)
}
