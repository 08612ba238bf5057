// models/guess.go
package models

import "time"

// Guess is one scored submission of a user against an answer. Rows are append-only.
type Guess struct {
	ID       string `json:"wordle_guess_id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"not null;index:idx_guess_user_answer"`
	AnswerID string `json:"wordle_answer_id" gorm:"not null;index:idx_guess_user_answer"`
	Guess    string `json:"guess" gorm:"not null"`
	Marks    string `json:"marks" gorm:"not null"` // one of '+', '-', ' ' per letter

	CorrectPlacement int  `json:"correct_placement" gorm:"default:0"`
	CorrectLetters   int  `json:"correct_letters" gorm:"default:0"`
	Correct          bool `json:"correct" gorm:"default:false"`

	CreatedAt time.Time `json:"create_date"`
}
