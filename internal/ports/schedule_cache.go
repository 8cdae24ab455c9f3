package ports

import (
	"context"
	"time"
)

// Port: optional cache for computed day agendas. A miss is (nil, false,
// nil); cache failures are surfaced so callers can decide to fall
// through to recomputation.
type ScheduleCache interface {
	GetDay(ctx context.Context, date time.Time) ([]byte, bool, error)
	PutDay(ctx context.Context, date time.Time, payload []byte, ttl time.Duration) error
	InvalidateDay(ctx context.Context, date time.Time) error
}
