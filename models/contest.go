package models

import "time"

// UpcomingContest is a local mirror of a not-yet-started contest announced by one
// of the platforms. Populated by the contest sync worker; read-only for handlers.
type UpcomingContest struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Platform string `gorm:"uniqueIndex:idx_contest_platform_key;not null" json:"platform"`

	// ExternalKey is the platform's own identifier (contest id or slug),
	// used for conflict resolution on re-sync.
	ExternalKey string `gorm:"uniqueIndex:idx_contest_platform_key;not null" json:"external_key"`

	Name            string    `gorm:"not null" json:"name"`
	URL             string    `json:"url"`
	StartsAt        time.Time `gorm:"index" json:"starts_at"`
	DurationSeconds int64     `json:"duration_seconds"`

	// Hard-deleted on prune; a soft-delete marker would keep the unique index
	// occupied if a platform reused a contest key.
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}
