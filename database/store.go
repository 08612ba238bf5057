// database/store.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"word-league-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the service store interfaces on top of gorm.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) ListLeagues(ctx context.Context, f models.LeagueFilter) ([]models.League, error) {
	q := s.DB.WithContext(ctx).Model(&models.League{})
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if f.Slug != "" {
		q = q.Where("slug = ?", f.Slug)
	}
	q, err := applyList(q, f.ListOptions, leagueSorts)
	if err != nil {
		return nil, err
	}

	var leagues []models.League
	if err := q.Find(&leagues).Error; err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	return leagues, nil
}

func (s *Store) ListSeries(ctx context.Context, f models.SeriesFilter) ([]models.Series, error) {
	q := s.DB.WithContext(ctx).Model(&models.Series{})
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if f.LeagueID != "" {
		q = q.Where("league_id = ?", f.LeagueID)
	}
	if f.StartOnOrBefore != nil {
		q = q.Where("start_date <= ?", f.StartOnOrBefore.UTC())
	}
	if f.StartOnOrAfter != nil {
		q = q.Where("start_date >= ?", f.StartOnOrAfter.UTC())
	}
	if f.EndBefore != nil {
		q = q.Where("end_date < ?", f.EndBefore.UTC())
	}
	if f.EndAfter != nil {
		q = q.Where("end_date > ?", f.EndAfter.UTC())
	}
	q, err := applyList(q, f.ListOptions, seriesSorts)
	if err != nil {
		return nil, err
	}

	var series []models.Series
	if err := q.Find(&series).Error; err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	return series, nil
}

// InsertSeries inserts row unless its (league_id, start_date) already exists. On a conflict
// row is replaced by the stored series and false is returned.
func (s *Store) InsertSeries(ctx context.Context, row *models.Series) (bool, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.StartDate = row.StartDate.UTC()
	row.EndDate = row.EndDate.UTC()

	res := s.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "league_id"}, {Name: "start_date"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert series: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Another generator got there first
	var existing models.Series
	err := s.DB.WithContext(ctx).
		Where("league_id = ? AND start_date = ?", row.LeagueID, row.StartDate).
		First(&existing).Error
	if err != nil {
		return false, fmt.Errorf("failed to load conflicting series: %w", notFound(err))
	}
	*row = existing
	return false, nil
}

func (s *Store) ListAnswers(ctx context.Context, f models.AnswerFilter) ([]models.Answer, error) {
	q := s.DB.WithContext(ctx).Model(&models.Answer{})
	if f.ID != "" {
		q = q.Where("id = ?", f.ID)
	}
	if f.LeagueID != "" {
		q = q.Where("league_id = ?", f.LeagueID)
	}
	if f.SeriesID != "" {
		q = q.Where("series_id = ?", f.SeriesID)
	}
	if f.ActiveAfter != nil {
		q = q.Where("active_after = ?", f.ActiveAfter.UTC())
	}
	if f.ActiveAt != nil {
		at := f.ActiveAt.UTC()
		q = q.Where("active_after <= ? AND active_before > ?", at, at)
	}
	q, err := applyList(q, f.ListOptions, answerSorts)
	if err != nil {
		return nil, err
	}

	var answers []models.Answer
	if err := q.Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	return answers, nil
}

// InsertAnswer inserts row unless an answer for (league_id, active_after) exists, with the
// same conflict contract as InsertSeries.
func (s *Store) InsertAnswer(ctx context.Context, row *models.Answer) (bool, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.ActiveAfter = row.ActiveAfter.UTC()
	row.ActiveBefore = row.ActiveBefore.UTC()

	res := s.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "league_id"}, {Name: "active_after"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert answer: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing models.Answer
	err := s.DB.WithContext(ctx).
		Where("league_id = ? AND active_after = ?", row.LeagueID, row.ActiveAfter).
		First(&existing).Error
	if err != nil {
		return false, fmt.Errorf("failed to load conflicting answer: %w", notFound(err))
	}
	*row = existing
	return false, nil
}

func (s *Store) ListGuesses(ctx context.Context, f models.GuessFilter) ([]models.Guess, error) {
	q := s.DB.WithContext(ctx).Model(&models.Guess{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.AnswerID != "" {
		q = q.Where("answer_id = ?", f.AnswerID)
	}
	q, err := applyList(q, f.ListOptions, guessSorts)
	if err != nil {
		return nil, err
	}

	var guesses []models.Guess
	if err := q.Find(&guesses).Error; err != nil {
		return nil, fmt.Errorf("failed to query guesses: %w", err)
	}
	return guesses, nil
}

// InsertGuess stores row while holding the answer row lock, so concurrent submissions of
// one user cannot exceed maxGuesses or continue past a correct guess.
func (s *Store) InsertGuess(ctx context.Context, row *models.Guess, maxGuesses int) (int, error) {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	row.CreatedAt = row.CreatedAt.UTC()

	total := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", row.AnswerID).
			First(&answer).Error; err != nil {
			return notFound(err)
		}

		var prior []models.Guess
		if err := tx.Where("user_id = ? AND answer_id = ?", row.UserID, row.AnswerID).
			Find(&prior).Error; err != nil {
			return err
		}
		for _, g := range prior {
			if g.Correct {
				return models.ErrAlreadySolved
			}
		}
		if maxGuesses > 0 && len(prior) >= maxGuesses {
			return models.ErrGuessLimitReached
		}

		if err := tx.Create(row).Error; err != nil {
			return err
		}
		total = len(prior) + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListMemberships(ctx context.Context, f models.MembershipFilter) ([]models.Membership, error) {
	q := s.DB.WithContext(ctx).Model(&models.Membership{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.LeagueID != "" {
		q = q.Where("league_id = ?", f.LeagueID)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	q, err := applyList(q, f.ListOptions, membershipSorts)
	if err != nil {
		return nil, err
	}

	var members []models.Membership
	if err := q.Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	return members, nil
}

// UpsertMembership creates the membership, reactivates a left one, or leaves an active one
// untouched.
func (s *Store) UpsertMembership(ctx context.Context, leagueID, userID string, now time.Time) (*models.Membership, error) {
	now = now.UTC()
	var out models.Membership
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("league_id = ? AND user_id = ?", leagueID, userID).
			First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = models.Membership{
				LeagueID:   leagueID,
				UserID:     userID,
				Active:     true,
				AddDate:    now,
				RejoinDate: now,
			}
			return tx.Omit(clause.Associations).Create(&out).Error
		case err != nil:
			return err
		case out.Active:
			return nil
		}

		if err := tx.Model(&models.Membership{}).
			Where("league_id = ? AND user_id = ?", leagueID, userID).
			Updates(map[string]interface{}{
				"active":      true,
				"rejoin_date": now,
				"leave_date":  nil,
			}).Error; err != nil {
			return err
		}
		out.Active = true
		out.RejoinDate = now
		out.LeaveDate = nil
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert membership: %w", err)
	}
	return &out, nil
}

// DeactivateMembership marks an active membership as left. Leaving twice is a no-op; an
// unknown membership is ErrNotFound.
func (s *Store) DeactivateMembership(ctx context.Context, leagueID, userID string, now time.Time) error {
	res := s.DB.WithContext(ctx).Model(&models.Membership{}).
		Where("league_id = ? AND user_id = ? AND active = ?", leagueID, userID, true).
		Updates(map[string]interface{}{
			"active":     false,
			"leave_date": now.UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate membership: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Membership{}).
		Where("league_id = ? AND user_id = ?", leagueID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
