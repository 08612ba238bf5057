// services/store.go
package services

import (
	"context"
	"time"

	"word-league-system/models"
)

// LeagueStore reads leagues and manages memberships.
type LeagueStore interface {
	ListLeagues(ctx context.Context, f models.LeagueFilter) ([]models.League, error)
	ListMemberships(ctx context.Context, f models.MembershipFilter) ([]models.Membership, error)
	UpsertMembership(ctx context.Context, leagueID, userID string, now time.Time) (*models.Membership, error)
	DeactivateMembership(ctx context.Context, leagueID, userID string, now time.Time) error
}

// SeriesStore lists and inserts series windows. InsertSeries reports false, nil when a row
// for the same (league, start_date) already existed; row is then filled with that row.
type SeriesStore interface {
	ListSeries(ctx context.Context, f models.SeriesFilter) ([]models.Series, error)
	InsertSeries(ctx context.Context, row *models.Series) (bool, error)
}

// AnswerStore lists and inserts answers, with the same insert-if-absent contract as
// SeriesStore on (league, active_after).
type AnswerStore interface {
	ListSeries(ctx context.Context, f models.SeriesFilter) ([]models.Series, error)
	ListAnswers(ctx context.Context, f models.AnswerFilter) ([]models.Answer, error)
	InsertAnswer(ctx context.Context, row *models.Answer) (bool, error)
}

// GuessStore records guesses. InsertGuess refuses the row with ErrAlreadySolved or
// ErrGuessLimitReached and returns the user's guess count including the new one.
type GuessStore interface {
	ListGuesses(ctx context.Context, f models.GuessFilter) ([]models.Guess, error)
	InsertGuess(ctx context.Context, row *models.Guess, maxGuesses int) (int, error)
}

// Store is everything the services need from persistence.
type Store interface {
	LeagueStore
	AnswerStore
	GuessStore
	InsertSeries(ctx context.Context, row *models.Series) (bool, error)
}

// only returns the single row of rows, ErrNotFound for none and a MultiplicityError for more.
func only[T any](rows []T, entity string) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, models.ErrNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, &models.MultiplicityError{Entity: entity, Count: len(rows)}
	}
}
