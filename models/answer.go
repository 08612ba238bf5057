// models/answer.go
package models

import "time"

// Answer is one secret word, active during [ActiveAfter, ActiveBefore) inside its series.
// LeagueID is denormalised from the series so (league, active_after) can be unique.
type Answer struct {
	ID           string    `json:"wordle_answer_id" gorm:"primaryKey"`
	SeriesID     string    `json:"wordle_league_series_id" gorm:"not null;index"`
	LeagueID     string    `json:"wordle_league_id" gorm:"not null;uniqueIndex:idx_answer_league_active"`
	Answer       string    `json:"answer" gorm:"not null"`
	ActiveAfter  time.Time `json:"active_after" gorm:"not null;uniqueIndex:idx_answer_league_active"`
	ActiveBefore time.Time `json:"active_before" gorm:"not null;index"`
	CreatedAt    time.Time `json:"create_date"`

	Series Series `json:"-" gorm:"foreignKey:SeriesID"`
}

// IsActive reports whether the answer is live at t.
func (a Answer) IsActive(t time.Time) bool {
	return !t.Before(a.ActiveAfter) && t.Before(a.ActiveBefore)
}
