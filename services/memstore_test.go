package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"word-league-system/models"

	"github.com/google/uuid"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testLeague() models.League {
	return models.League{
		ID:                  "league-1",
		Slug:                "five-letters",
		Name:                "Five Letters",
		Letters:             5,
		MaxGuesses:          6,
		SeriesDays:          7,
		AnswerIntervalHours: 24,
		TimeToLiveHours:     24,
		StartDate:           jan1,
	}
}

// memStore is an in-memory Store with the same conflict and locking contract as the
// database implementation.
type memStore struct {
	mu      sync.Mutex
	leagues []models.League
	series  []models.Series
	answers []models.Answer
	guesses []models.Guess
	members []models.Membership

	seriesInserts int
	answerInserts int
}

var _ Store = (*memStore)(nil)
var _ PuzzleStore = (*memStore)(nil)

func newMemStore(leagues ...models.League) *memStore {
	return &memStore{leagues: leagues}
}

func paginate[T any](rows []T, opts models.ListOptions) []T {
	if opts.Limit <= 0 {
		return rows
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * opts.Limit
	if start >= len(rows) {
		return nil
	}
	end := start + opts.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func hasSort(opts models.ListOptions, key string) bool {
	for _, s := range opts.Sort {
		if s == key {
			return true
		}
	}
	return false
}

func (m *memStore) ListLeagues(_ context.Context, f models.LeagueFilter) ([]models.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.League
	for _, l := range m.leagues {
		if f.ID != "" && l.ID != f.ID {
			continue
		}
		if f.Slug != "" && l.Slug != f.Slug {
			continue
		}
		out = append(out, l)
	}
	if hasSort(f.ListOptions, "name") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	if hasSort(f.ListOptions, "slug") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	}
	return paginate(out, f.ListOptions), nil
}

func (m *memStore) ListSeries(_ context.Context, f models.SeriesFilter) ([]models.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Series
	for _, s := range m.series {
		switch {
		case f.ID != "" && s.ID != f.ID,
			f.LeagueID != "" && s.LeagueID != f.LeagueID,
			f.StartOnOrBefore != nil && s.StartDate.After(*f.StartOnOrBefore),
			f.StartOnOrAfter != nil && s.StartDate.Before(*f.StartOnOrAfter),
			f.EndBefore != nil && !s.EndDate.Before(*f.EndBefore),
			f.EndAfter != nil && !s.EndDate.After(*f.EndAfter):
			continue
		}
		out = append(out, s)
	}
	if hasSort(f.ListOptions, "-start_date") {
		sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	}
	return paginate(out, f.ListOptions), nil
}

func (m *memStore) InsertSeries(_ context.Context, row *models.Series) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.series {
		if s.LeagueID == row.LeagueID && s.StartDate.Equal(row.StartDate) {
			*row = s
			return false, nil
		}
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	m.series = append(m.series, *row)
	m.seriesInserts++
	return true, nil
}

func (m *memStore) ListAnswers(_ context.Context, f models.AnswerFilter) ([]models.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Answer
	for _, a := range m.answers {
		switch {
		case f.ID != "" && a.ID != f.ID,
			f.LeagueID != "" && a.LeagueID != f.LeagueID,
			f.SeriesID != "" && a.SeriesID != f.SeriesID,
			f.ActiveAfter != nil && !a.ActiveAfter.Equal(*f.ActiveAfter),
			f.ActiveAt != nil && !a.IsActive(*f.ActiveAt):
			continue
		}
		out = append(out, a)
	}
	switch {
	case hasSort(f.ListOptions, "-active_after"):
		sort.SliceStable(out, func(i, j int) bool { return out[i].ActiveAfter.After(out[j].ActiveAfter) })
	case hasSort(f.ListOptions, "active_after"):
		sort.SliceStable(out, func(i, j int) bool { return out[i].ActiveAfter.Before(out[j].ActiveAfter) })
	}
	return paginate(out, f.ListOptions), nil
}

func (m *memStore) InsertAnswer(_ context.Context, row *models.Answer) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.answers {
		if a.LeagueID == row.LeagueID && a.ActiveAfter.Equal(row.ActiveAfter) {
			*row = a
			return false, nil
		}
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	m.answers = append(m.answers, *row)
	m.answerInserts++
	return true, nil
}

func (m *memStore) ListGuesses(_ context.Context, f models.GuessFilter) ([]models.Guess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Guess
	for _, g := range m.guesses {
		if (f.UserID == "" || g.UserID == f.UserID) && (f.AnswerID == "" || g.AnswerID == f.AnswerID) {
			out = append(out, g)
		}
	}
	return paginate(out, f.ListOptions), nil
}

func (m *memStore) InsertGuess(_ context.Context, row *models.Guess, maxGuesses int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, g := range m.guesses {
		if g.UserID != row.UserID || g.AnswerID != row.AnswerID {
			continue
		}
		if g.Correct {
			return 0, models.ErrAlreadySolved
		}
		count++
	}
	if maxGuesses > 0 && count >= maxGuesses {
		return 0, models.ErrGuessLimitReached
	}
	m.guesses = append(m.guesses, *row)
	return count + 1, nil
}

func (m *memStore) ListMemberships(_ context.Context, f models.MembershipFilter) ([]models.Membership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Membership
	for _, mb := range m.members {
		switch {
		case f.UserID != "" && mb.UserID != f.UserID,
			f.LeagueID != "" && mb.LeagueID != f.LeagueID,
			f.Active != nil && mb.Active != *f.Active:
			continue
		}
		out = append(out, mb)
	}
	return paginate(out, f.ListOptions), nil
}

func (m *memStore) UpsertMembership(_ context.Context, leagueID, userID string, now time.Time) (*models.Membership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mb := range m.members {
		if mb.LeagueID != leagueID || mb.UserID != userID {
			continue
		}
		if !mb.Active {
			m.members[i].Active = true
			m.members[i].RejoinDate = now
			m.members[i].LeaveDate = nil
		}
		out := m.members[i]
		return &out, nil
	}
	mb := models.Membership{LeagueID: leagueID, UserID: userID, Active: true, AddDate: now, RejoinDate: now}
	m.members = append(m.members, mb)
	return &mb, nil
}

func (m *memStore) DeactivateMembership(_ context.Context, leagueID, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mb := range m.members {
		if mb.LeagueID == leagueID && mb.UserID == userID {
			if mb.Active {
				left := now
				m.members[i].Active = false
				m.members[i].LeaveDate = &left
			}
			return nil
		}
	}
	return models.ErrNotFound
}
