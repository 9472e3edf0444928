package db

import (
	"context"
	"time"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
)

func (s *DB) CreateChallenge(ctx context.Context, ch entity.OneTimeChallenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	// Prior challenges for the same username stay valid; the insert never
	// touches existing rows.
	const query = `
		INSERT INTO challenges (id, username, code_hash, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query,
		ch.ID,
		ch.Username,
		ch.CodeHash,
		ch.IssuedAt,
		ch.ExpiresAt,
	)

	err = s.mapError(err)
	return err
}

// ConsumeChallenge atomically deletes one unexpired challenge matching the
// username and code digest. Returning true means the code was valid and is
// now burned; a second call with the same code returns false.
func (s *DB) ConsumeChallenge(ctx context.Context, username, codeHash string, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		DELETE FROM challenges
		WHERE id = (
			SELECT id FROM challenges
			WHERE username = $1 AND code_hash = $2 AND expires_at > $3
			LIMIT 1
		)`

	tag, err := s.conn.Exec(ctx, query, username, codeHash, now)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

// PurgeExpiredChallenges removes challenges past their deadline. Expired
// rows are already unusable; this only reclaims space.
func (s *DB) PurgeExpiredChallenges(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "PurgeExpiredChallenges")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM challenges WHERE expires_at <= $1`

	tag, err := s.conn.Exec(ctx, query, now)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
