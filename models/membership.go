// models/membership.go
package models

import "time"

// Membership links an external user id to a league. Leaving only flips Active.
type Membership struct {
	LeagueID   string     `json:"wordle_league_id" gorm:"primaryKey"`
	UserID     string     `json:"user_id" gorm:"primaryKey;index"`
	Active     bool       `json:"active" gorm:"not null;default:true"`
	AddDate    time.Time  `json:"add_date"`
	RejoinDate time.Time  `json:"rejoin_date"`
	LeaveDate  *time.Time `json:"leave_date,omitempty"`

	League League `json:"-" gorm:"foreignKey:LeagueID"`
}

// TableName keeps the historical table name.
func (Membership) TableName() string {
	return "league_members"
}
