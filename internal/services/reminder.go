package services

import (
	"time"

	"github.com/musama5293/NPI-Portal-sub003/internal/lifecycle"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"

	"go.uber.org/zap"
)

// ExpirySweeper periodically surfaces assignments whose availability window
// is closing so operators can chase candidates before the deadline. Delivery
// (email etc.) is out of scope; the sweep reports through the log.
type ExpirySweeper struct {
	log *zap.Logger
}

func NewExpirySweeper(log *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{log: log}
}

// Start runs the sweeper in a goroutine.
func (s *ExpirySweeper) Start() {
	s.log.Info("Starting expiry sweeper...")
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.runSweep(time.Now().UTC())
		}
	}()
}

func (s *ExpirySweeper) runSweep(now time.Time) {
	assignments, err := repository.GetAssignmentsNearingExpiry(now, 72*time.Hour)
	if err != nil {
		s.log.Error("Failed to query assignments nearing expiry", zap.Error(err))
		return
	}

	for _, a := range assignments {
		remaining := lifecycle.TimeRemaining(&a, now)
		tier := lifecycle.Tier(remaining)
		if tier == lifecycle.UrgencyNormal {
			continue
		}
		s.log.Warn("Assignment nearing expiry",
			zap.String("assignment", a.PublicID),
			zap.String("status", string(a.CompletionStatus)),
			zap.Duration("remaining", remaining),
			zap.String("urgency", string(tier)),
		)
	}
}
