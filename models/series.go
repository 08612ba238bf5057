// models/series.go
package models

import "time"

// Series is one contiguous [StartDate, EndDate) window of a league. The next series of a
// league always starts where the previous one ended.
type Series struct {
	ID        string    `json:"wordle_league_series_id" gorm:"primaryKey"`
	LeagueID  string    `json:"wordle_league_id" gorm:"not null;uniqueIndex:idx_series_league_start"`
	StartDate time.Time `json:"start_date" gorm:"not null;uniqueIndex:idx_series_league_start"`
	EndDate   time.Time `json:"end_date" gorm:"not null;index"`
	CreatedAt time.Time `json:"create_date"`

	League League `json:"-" gorm:"foreignKey:LeagueID"`
}

// TableName keeps the historical table name.
func (Series) TableName() string {
	return "league_series"
}

// Contains reports whether t falls inside the window.
func (s Series) Contains(t time.Time) bool {
	return !t.Before(s.StartDate) && t.Before(s.EndDate)
}
