package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironflow/internal/models"
)

// UnlockedBadgeIDs returns the set of badge ids already unlocked.
func (db *DB) UnlockedBadgeIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT badge_id FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("querying unlocked badges: %w", err)
	}
	defer rows.Close()

	unlocked := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning badge id: %w", err)
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}

// InsertAchievement persists an unlock. Unlocks are one-time: a badge
// id already present is left untouched. Returns true if inserted.
func (db *DB) InsertAchievement(ctx context.Context, a models.Achievement) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO achievements (badge_id, unlocked_at)
		 VALUES ($1,$2)
		 ON CONFLICT DO NOTHING`,
		a.ID, a.UnlockedAt)
	if err != nil {
		return false, fmt.Errorf("inserting achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryAchievements returns every unlock, oldest first.
func (db *DB) QueryAchievements(ctx context.Context) ([]models.Achievement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT badge_id, unlocked_at FROM achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var result []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
