package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAchievement(ctx context.Context, data AchievementEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO achievement_events (sequence, achievement_id, title, tier, timestamp_unix)
		VALUES (?, ?, ?, ?, ?)`,
		seqNum, data.AchievementID, data.Title, data.Tier, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error) {
	query := `SELECT achievement_id, title, tier, sequence, timestamp_unix
		FROM achievement_events` + whereClause(opts) + ` ORDER BY sequence DESC`
	args := whereArgs(opts)
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	defer rows.Close()

	var records []AchievementEventRecord
	for rows.Next() {
		var rec AchievementEventRecord
		var ts int64
		err := rows.Scan(&rec.AchievementID, &rec.Title, &rec.Tier, &rec.Sequence, &ts)
		if err != nil {
			return nil, fmt.Errorf("scan achievement event: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
