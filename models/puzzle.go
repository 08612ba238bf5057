// models/puzzle.go
package models

import "time"

// ActivePuzzle is one live answer of a league the user belongs to, with the user's progress.
type ActivePuzzle struct {
	LeagueSlug      string    `json:"league_slug"`
	LeagueName      string    `json:"league_name"`
	Letters         int       `json:"letters"`
	MaxGuesses      int       `json:"max_guesses"`
	AnswerID        string    `json:"wordle_answer_id"`
	ActiveAfter     time.Time `json:"active_after"`
	ActiveBefore    time.Time `json:"active_before"`
	SeriesStartDate time.Time `json:"series_start_date"`
	SeriesEndDate   time.Time `json:"series_end_date"`
	Guesses         int       `json:"guesses"`
	Correct         bool      `json:"correct"`

	// CorrectAnswer is only set once the puzzle is finished for this user.
	CorrectAnswer *string `json:"correct_answer"`
}

// GuessResult is what a submission returns to the caller.
type GuessResult struct {
	Result     string  `json:"result"`
	Correct    bool    `json:"correct"`
	Guesses    int     `json:"guesses"`
	MaxGuesses int     `json:"max_guesses"`
	Answer     *string `json:"answer,omitempty"`
}
