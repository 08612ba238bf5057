// models/league.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// League is the static configuration of one word game. Rows are created out of band
// and are read-only to the scheduling code.
type League struct {
	ID   string `json:"wordle_league_id" gorm:"primaryKey"`
	Slug string `json:"league_slug" gorm:"uniqueIndex;not null"`
	Name string `json:"league_name" gorm:"not null"`

	// 🎯 Puzzle shape
	Letters    int `json:"letters" gorm:"not null"`
	MaxGuesses int `json:"max_guesses" gorm:"not null"`

	// ⏱️ Lifecycle
	SeriesDays          int       `json:"series_days" gorm:"not null"`
	AnswerIntervalHours int       `json:"answer_interval_hours" gorm:"not null"`
	TimeToLiveHours     int       `json:"time_to_live_hours" gorm:"not null"`
	StartDate           time.Time `json:"start_date" gorm:"not null"`

	CreatedAt time.Time `json:"create_date" gorm:"autoCreateTime"`

	// Calculated per request (not stored in DB)
	IsMember bool `json:"is_member" gorm:"-"`
}

// SeriesLength is the span of one series window.
func (l League) SeriesLength(start time.Time) time.Time {
	return start.AddDate(0, 0, l.SeriesDays)
}

// AnswerInterval is the spacing between two successive answers.
func (l League) AnswerInterval() time.Duration {
	return time.Duration(l.AnswerIntervalHours) * time.Hour
}

// TimeToLive is how long one answer stays active.
func (l League) TimeToLive() time.Duration {
	return time.Duration(l.TimeToLiveHours) * time.Hour
}

// BeforeCreate fills the id and derives the slug from the name when it is missing.
func (l *League) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Slug == "" {
		l.Slug = slug.Make(l.Name)
	}
	return nil
}
