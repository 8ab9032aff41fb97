package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendPlay(ctx context.Context, data PlayEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO play_events
			(sequence, session_id, volcano, game_type, game_title, score, total, completed, duration_secs, timestamp_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Volcano, data.GameType, data.GameTitle,
		data.Score, data.Total, data.Completed, data.DurationSecs,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save play event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPlays(ctx context.Context, opts QueryOpts) ([]PlayEventRecord, error) {
	query := `SELECT session_id, volcano, game_type, game_title, score, total, completed, duration_secs, sequence, timestamp_unix
		FROM play_events` + whereClause(opts) + ` ORDER BY sequence DESC`
	args := whereArgs(opts)
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query play events: %w", err)
	}
	defer rows.Close()

	var records []PlayEventRecord
	for rows.Next() {
		var rec PlayEventRecord
		var ts int64
		err := rows.Scan(&rec.SessionID, &rec.Volcano, &rec.GameType, &rec.GameTitle,
			&rec.Score, &rec.Total, &rec.Completed, &rec.DurationSecs, &rec.Sequence, &ts)
		if err != nil {
			return nil, fmt.Errorf("scan play event: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) PlayCounts(ctx context.Context) (map[string]int, int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT game_type, COUNT(*) FROM play_events WHERE completed = 1 GROUP BY game_type`)
	if err != nil {
		return nil, 0, fmt.Errorf("query play counts: %w", err)
	}
	defer rows.Close()

	byType := make(map[string]int)
	total := 0
	for rows.Next() {
		var gameType string
		var n int
		if err := rows.Scan(&gameType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan play count: %w", err)
		}
		byType[gameType] = n
		total += n
	}
	return byType, total, rows.Err()
}

// whereClause assembles the WHERE clause for QueryOpts filters. whereArgs
// returns the matching bind arguments in the same order.
func whereClause(opts QueryOpts) string {
	var conds []string
	if opts.After > 0 {
		conds = append(conds, "sequence > ?")
	}
	if opts.Before > 0 {
		conds = append(conds, "sequence < ?")
	}
	if !opts.From.IsZero() {
		conds = append(conds, "timestamp_unix >= ?")
	}
	if !opts.To.IsZero() {
		conds = append(conds, "timestamp_unix <= ?")
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func whereArgs(opts QueryOpts) []any {
	var args []any
	if opts.After > 0 {
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		args = append(args, opts.From.Unix())
	}
	if !opts.To.IsZero() {
		args = append(args, opts.To.Unix())
	}
	return args
}
