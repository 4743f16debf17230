package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, Actor(ctx))
	assert.Empty(t, Client(ctx))

	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	ctx = WithTime(WithActor(WithRequestID(ctx, "req-1"), "auditor@example.com"), fixed)

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "auditor@example.com", Actor(ctx))
	assert.Equal(t, fixed, Now(ctx))
	assert.Equal(t, "Safari 17 on iOS (mobile)", Client(WithClient(ctx, "Safari 17 on iOS (mobile)")))
}

func TestNow_FallsBackToWallClock(t *testing.T) {
	before := time.Now()
	got := Now(context.Background())
	assert.False(t, got.Before(before))
}
