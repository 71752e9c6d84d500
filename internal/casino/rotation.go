package casino

import (
	"context"
	"time"
)

// RotationJob periodically gives the seed manager a chance to rotate.
// Registered with the jobs manager at startup.
type RotationJob struct {
	Seeds *SeedManager
}

func (j *RotationJob) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Seeds.MaybeRotate()
		}
	}
}
