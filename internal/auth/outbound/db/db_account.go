package db

import (
	"context"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
)

func (s *DB) GetAccountByUsername(ctx context.Context, username string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByUsername")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, username, email, phone, password_hash, factor_strategy,
		       totp_secret, totp_key_version, last_totp_step, is_verified,
		       created_at, updated_at
		FROM accounts
		WHERE username = $1`

	var acc entity.Account
	err = s.conn.QueryRow(ctx, query, username).Scan(
		&acc.ID,
		&acc.Username,
		&acc.Email,
		&acc.Phone,
		&acc.PasswordHash,
		&acc.FactorStrategy,
		&acc.TOTPSecret,
		&acc.TOTPKeyVersion,
		&acc.LastTOTPStep,
		&acc.IsVerified,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

func (s *DB) CreateAccount(ctx context.Context, acc entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO accounts
			(id, username, email, phone, password_hash, factor_strategy,
			 totp_secret, totp_key_version, last_totp_step, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, FALSE)`

	_, err = s.conn.Exec(ctx, query,
		acc.ID,
		acc.Username,
		acc.Email,
		acc.Phone,
		acc.PasswordHash,
		acc.FactorStrategy,
		acc.TOTPSecret,
		acc.TOTPKeyVersion,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) MarkAccountVerified(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkAccountVerified")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE accounts SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`

	_, err = s.conn.Exec(ctx, query, id)

	err = s.mapError(err)
	return err
}

func (s *DB) SetTOTPSecret(ctx context.Context, id int64, secret []byte, keyVersion int16) (err error) {
	ctx, span := s.startSpan(ctx, "SetTOTPSecret")
	defer func() { s.endSpan(span, err) }()

	// Rotating the secret resets the replay watermark; the old secret's
	// steps are meaningless for the new one.
	const query = `
		UPDATE accounts
		SET totp_secret = $2, totp_key_version = $3, last_totp_step = 0, updated_at = NOW()
		WHERE id = $1`

	_, err = s.conn.Exec(ctx, query, id, secret, keyVersion)

	err = s.mapError(err)
	return err
}

// CommitTOTPStep advances the replay watermark to step. It returns false
// when step is not strictly greater than the stored watermark, which means
// a code for that time window was already accepted.
func (s *DB) CommitTOTPStep(ctx context.Context, id int64, step int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "CommitTOTPStep")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE accounts
		SET last_totp_step = $2, updated_at = NOW()
		WHERE id = $1 AND last_totp_step < $2`

	tag, err := s.conn.Exec(ctx, query, id, step)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
