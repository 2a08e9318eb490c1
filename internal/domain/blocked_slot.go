package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

// BlockedSlot is a salon-wide period when nothing can be booked
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	IsFullDay bool
	StartTime *types.TimeString
	EndTime   *types.TimeString // nil = exactly one grid step from StartTime
	Reason    *string
	CreatedAt time.Time
}

// AppliesTo returns true if the block is on the given local date
func (b *BlockedSlot) AppliesTo(day time.Time) bool {
	return SameDay(b.Date, day)
}
