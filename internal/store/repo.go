package store

import (
	"context"
	"database/sql"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// PlayEventData captures a single mini-game play.
type PlayEventData struct {
	SessionID    string
	Volcano      string
	GameType     string
	GameTitle    string
	Score        int
	Total        int
	Completed    bool
	DurationSecs int
}

// PlayEventRecord is a stored play event.
type PlayEventRecord struct {
	SessionID    string
	Volcano      string
	GameType     string
	GameTitle    string
	Score        int
	Total        int
	Completed    bool
	DurationSecs int
	Sequence     int64
	Timestamp    time.Time
}

// AchievementEventData captures a surfaced achievement.
type AchievementEventData struct {
	AchievementID string
	Title         string
	Tier          string
}

// AchievementEventRecord is a stored achievement event.
type AchievementEventRecord struct {
	AchievementID string
	Title         string
	Tier          string
	Sequence      int64
	Timestamp     time.Time
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendPlay records a mini-game play event.
	AppendPlay(ctx context.Context, data PlayEventData) error

	// QueryPlays returns play events, newest first.
	QueryPlays(ctx context.Context, opts QueryOpts) ([]PlayEventRecord, error)

	// PlayCounts returns completed-play counts by game type and the total.
	PlayCounts(ctx context.Context) (map[string]int, int, error)

	// AppendAchievement records a surfaced achievement event.
	AppendAchievement(ctx context.Context, data AchievementEventData) error

	// QueryAchievements returns achievement events, newest first.
	QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}
