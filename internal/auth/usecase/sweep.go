package usecase

import (
	"context"
	"log/slog"

	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
)

// Sweep drops expired pending sessions from memory and purges expired
// challenge rows. The application runs this on a timer.
func (s *Usecase) Sweep(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Sweep")
	defer span.End()

	now := s.clock.Now()
	dropped := s.sessions.Sweep(now)

	purged, err := s.repoDB.PurgeExpiredChallenges(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo purge expired challenges", "error", err)
		return goerror.NewServer(err)
	}

	if dropped > 0 || purged > 0 {
		slog.InfoContext(ctx, "sweep completed", "sessions_dropped", dropped, "challenges_purged", purged)
	}

	return nil
}
