package testutil

import (
	"time"

	"github.com/light-bringer/foxshop-service/internal/pkg/clock"
)

// BaseTime is the starting instant of every mock clock. It is whole
// microseconds so values survive both Spanner and PostgreSQL timestamps.
var BaseTime = time.Date(2024, 12, 28, 14, 18, 29, 914000000, time.UTC)

// NewMockClock creates a mock clock that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(BaseTime)
}
