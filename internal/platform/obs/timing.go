package obs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const TickIDKey ctxKey = "tick_id"

// WithTickID stamps a fresh correlation id onto the context of one
// polling tick so its log lines can be grouped.
func WithTickID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TickIDKey, uuid.NewString())
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	tickID, _ := ctx.Value(TickIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("tick_id=%s op=%s dur=%dms err=%v", tickID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("tick_id=%s op=%s dur=%dms", tickID, name, dur.Milliseconds())
	}
}
