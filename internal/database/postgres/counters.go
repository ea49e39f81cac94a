package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ChatterBot_Go/internal/domain"
)

const userCountersColumns = `user_id, text_messages, total_chars, stickers, voices, images_posted,
	commands_used, warnings, username, first_name, last_name, joined_date, last_active`

// EnsureUser inserts a zeroed record if absent
func (s *Store) EnsureUser(ctx context.Context, userID int64, now time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_counters (user_id, joined_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`, userID, now)
	return domain.StoreError(OpEnsureUser, err)
}

// ApplyIncrements upserts the counters in one statement. Counters not named in
// deltas are added as zero; nil profile fields keep their stored value.
func (s *Store) ApplyIncrements(ctx context.Context, userID int64, deltas domain.CounterDeltas, profile domain.ProfileUpdate, now time.Time) error {
	if err := deltas.Validate(); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_counters (
			user_id, text_messages, total_chars, stickers, voices, images_posted,
			commands_used, warnings, username, first_name, last_name, joined_date, last_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			text_messages = user_counters.text_messages + EXCLUDED.text_messages,
			total_chars   = user_counters.total_chars + EXCLUDED.total_chars,
			stickers      = user_counters.stickers + EXCLUDED.stickers,
			voices        = user_counters.voices + EXCLUDED.voices,
			images_posted = user_counters.images_posted + EXCLUDED.images_posted,
			commands_used = user_counters.commands_used + EXCLUDED.commands_used,
			warnings      = user_counters.warnings + EXCLUDED.warnings,
			username      = COALESCE(EXCLUDED.username, user_counters.username),
			first_name    = COALESCE(EXCLUDED.first_name, user_counters.first_name),
			last_name     = COALESCE(EXCLUDED.last_name, user_counters.last_name),
			last_active   = COALESCE(EXCLUDED.last_active, user_counters.last_active)`,
		userID,
		deltas[domain.FieldTextMessages],
		deltas[domain.FieldTotalChars],
		deltas[domain.FieldStickers],
		deltas[domain.FieldVoices],
		deltas[domain.FieldImagesPosted],
		deltas[domain.FieldCommandsUsed],
		deltas[domain.FieldWarnings],
		profile.Username,
		profile.FirstName,
		profile.LastName,
		now,
		profile.LastActive,
	)
	return domain.StoreError(OpApplyIncrements, err)
}

// GetCounters returns the user's record or domain.ErrUserNotFound
func (s *Store) GetCounters(ctx context.Context, userID int64) (*domain.UserCounters, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userCountersColumns+` FROM user_counters WHERE user_id = $1`, userID)
	u, err := scanUserCounters(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, domain.StoreError(OpGetCounters, err)
	}
	return &u, nil
}

// SumCounter sums one counter column across all users
func (s *Store) SumCounter(ctx context.Context, field domain.CounterField) (int64, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidField, string(field))
	}
	var total int64
	err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0)::BIGINT FROM user_counters`, field)).Scan(&total)
	if err != nil {
		return 0, domain.StoreError(OpSumCounter, err)
	}
	return total, nil
}

// TopByCounter returns users with a positive counter, highest first
func (s *Store) TopByCounter(ctx context.Context, field domain.CounterField, limit int) ([]domain.UserCounters, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidField, string(field))
	}
	query := fmt.Sprintf(`
		SELECT %s FROM user_counters
		WHERE %s > 0
		ORDER BY %s DESC, user_id ASC
		LIMIT $1`, userCountersColumns, field, field)

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, domain.StoreError(OpTopByCounter, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserCounters, error) {
		return scanUserCounters(row)
	})
	if err != nil {
		return nil, domain.StoreError(OpTopByCounter, err)
	}
	return out, nil
}

func scanUserCounters(row pgx.Row) (domain.UserCounters, error) {
	var (
		u                     domain.UserCounters
		username, first, last *string
	)
	err := row.Scan(
		&u.UserID, &u.TextMessages, &u.TotalChars, &u.Stickers, &u.Voices, &u.ImagesPosted,
		&u.CommandsUsed, &u.Warnings, &username, &first, &last, &u.JoinedDate, &u.LastActive,
	)
	if err != nil {
		return domain.UserCounters{}, err
	}
	u.Username = deref(username)
	u.FirstName = deref(first)
	u.LastName = deref(last)
	return u, nil
}
