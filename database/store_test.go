package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"word-league-system/models"
	"word-league-system/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return NewStore(db)
}

func seedLeague(t *testing.T, s *Store, name string, letters int) models.League {
	t.Helper()
	league := models.League{
		Name:                name,
		Letters:             letters,
		MaxGuesses:          2,
		SeriesDays:          7,
		AnswerIntervalHours: 24,
		TimeToLiveHours:     24,
		StartDate:           jan1,
	}
	require.NoError(t, s.DB.Create(&league).Error)
	return league
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	require.Error(t, err)
}

func TestLeagueHookFillsIDAndSlug(t *testing.T) {
	s := newTestStore(t)
	league := seedLeague(t, s, "Five Letters", 5)
	assert.NotEmpty(t, league.ID)
	assert.Equal(t, "five-letters", league.Slug)

	found, err := s.ListLeagues(context.Background(), models.LeagueFilter{Slug: "five-letters"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, league.ID, found[0].ID)
}

func TestInsertSeries_ConflictIsSuccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)

	first := &models.Series{LeagueID: league.ID, StartDate: jan1, EndDate: jan1.AddDate(0, 0, 7)}
	inserted, err := s.InsertSeries(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	dup := &models.Series{LeagueID: league.ID, StartDate: jan1, EndDate: jan1.AddDate(0, 0, 3)}
	inserted, err = s.InsertSeries(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, dup.ID)
	assert.True(t, dup.EndDate.Equal(jan1.AddDate(0, 0, 7)))

	all, err := s.ListSeries(ctx, models.SeriesFilter{LeagueID: league.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListSeries_ContainingInstant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)
	for i := 0; i < 3; i++ {
		start := jan1.AddDate(0, 0, 7*i)
		_, err := s.InsertSeries(ctx, &models.Series{LeagueID: league.ID, StartDate: start, EndDate: start.AddDate(0, 0, 7)})
		require.NoError(t, err)
	}

	at := jan1.AddDate(0, 0, 7)
	found, err := s.ListSeries(ctx, models.SeriesFilter{
		LeagueID:        league.ID,
		StartOnOrBefore: &at,
		EndAfter:        &at,
		ListOptions:     models.First("-start_date"),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].StartDate.Equal(at))

	latest, err := s.ListSeries(ctx, models.SeriesFilter{LeagueID: league.ID, ListOptions: models.First("-start_date")})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.True(t, latest[0].StartDate.Equal(jan1.AddDate(0, 0, 14)))

	page2, err := s.ListSeries(ctx, models.SeriesFilter{
		LeagueID:    league.ID,
		ListOptions: models.ListOptions{Page: 2, Limit: 2, Sort: []string{"start_date"}},
	})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.True(t, page2[0].StartDate.Equal(jan1.AddDate(0, 0, 14)))
}

func TestListRejectsUnknownSort(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ListAnswers(context.Background(), models.AnswerFilter{
		ListOptions: models.ListOptions{Sort: []string{"answer; DROP TABLE answers"}},
	})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func seedAnswer(t *testing.T, s *Store, league models.League, word string) models.Answer {
	t.Helper()
	ctx := context.Background()
	series := &models.Series{LeagueID: league.ID, StartDate: jan1, EndDate: jan1.AddDate(0, 0, 7)}
	_, err := s.InsertSeries(ctx, series)
	require.NoError(t, err)
	answer := &models.Answer{
		SeriesID: series.ID, LeagueID: league.ID, Answer: word,
		ActiveAfter: jan1, ActiveBefore: jan1.Add(24 * time.Hour),
	}
	inserted, err := s.InsertAnswer(ctx, answer)
	require.NoError(t, err)
	require.True(t, inserted)
	return *answer
}

func TestInsertAnswer_ConflictAndActiveFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)
	answer := seedAnswer(t, s, league, "masse")

	dup := &models.Answer{
		SeriesID: answer.SeriesID, LeagueID: league.ID, Answer: "guest",
		ActiveAfter: jan1, ActiveBefore: jan1.Add(24 * time.Hour),
	}
	inserted, err := s.InsertAnswer(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "masse", dup.Answer)

	noon := jan1.Add(12 * time.Hour)
	live, err := s.ListAnswers(ctx, models.AnswerFilter{LeagueID: league.ID, ActiveAt: &noon})
	require.NoError(t, err)
	require.Len(t, live, 1)

	end := jan1.Add(24 * time.Hour)
	live, err = s.ListAnswers(ctx, models.AnswerFilter{LeagueID: league.ID, ActiveAt: &end})
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestInsertGuess_Limits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)
	answer := seedAnswer(t, s, league, "masse")

	guess := func(user, word string, correct bool) (int, error) {
		return s.InsertGuess(ctx, &models.Guess{
			UserID: user, AnswerID: answer.ID, Guess: word, Marks: "     ", Correct: correct,
			CreatedAt: jan1.Add(time.Hour),
		}, league.MaxGuesses)
	}

	n, err := guess("user-1", "guest", false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = guess("user-1", "basse", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = guess("user-1", "masse", true)
	require.ErrorIs(t, err, models.ErrGuessLimitReached)

	n, err = guess("user-2", "masse", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = guess("user-2", "masse", true)
	require.ErrorIs(t, err, models.ErrAlreadySolved)

	_, err = s.InsertGuess(ctx, &models.Guess{UserID: "user-1", AnswerID: "missing", Guess: "masse", Marks: "+++++"}, 6)
	require.ErrorIs(t, err, models.ErrNotFound)

	stored, err := s.ListGuesses(ctx, models.GuessFilter{UserID: "user-1", AnswerID: answer.ID})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestInsertGuess_ConcurrentSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)
	answer := seedAnswer(t, s, league, "masse")

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
		other    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.InsertGuess(ctx, &models.Guess{
				UserID: "user-1", AnswerID: answer.ID, Guess: "guest", Marks: " ----",
				CreatedAt: jan1.Add(time.Hour),
			}, league.MaxGuesses)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, models.ErrGuessLimitReached):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, league.MaxGuesses, ok)
	assert.Equal(t, workers-league.MaxGuesses, rejected)

	stored, err := s.ListGuesses(ctx, models.GuessFilter{UserID: "user-1", AnswerID: answer.ID})
	require.NoError(t, err)
	assert.Len(t, stored, league.MaxGuesses)
}

func TestMembershipLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)

	m, err := s.UpsertMembership(ctx, league.ID, "user-1", jan1)
	require.NoError(t, err)
	assert.True(t, m.Active)
	assert.True(t, m.AddDate.Equal(jan1))
	assert.True(t, m.RejoinDate.Equal(jan1))

	m, err = s.UpsertMembership(ctx, league.ID, "user-1", jan1.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, m.RejoinDate.Equal(jan1), "active membership is left untouched")

	left := jan1.Add(48 * time.Hour)
	require.NoError(t, s.DeactivateMembership(ctx, league.ID, "user-1", left))
	require.NoError(t, s.DeactivateMembership(ctx, league.ID, "user-1", left.Add(time.Hour)))

	inactive := false
	rows, err := s.ListMemberships(ctx, models.MembershipFilter{UserID: "user-1", Active: &inactive})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].LeaveDate)
	assert.True(t, rows[0].LeaveDate.Equal(left))

	rejoin := left.Add(24 * time.Hour)
	m, err = s.UpsertMembership(ctx, league.ID, "user-1", rejoin)
	require.NoError(t, err)
	assert.True(t, m.Active)
	assert.True(t, m.AddDate.Equal(jan1))
	assert.True(t, m.RejoinDate.Equal(rejoin))
	assert.Nil(t, m.LeaveDate)

	active := true
	rows, err = s.ListMemberships(ctx, models.MembershipFilter{UserID: "user-1", Active: &active})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].LeaveDate)

	err = s.DeactivateMembership(ctx, league.ID, "user-404", left)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGenerationAgainstSQLite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	league := seedLeague(t, s, "Five Letters", 5)
	words := services.NewWordList([]string{"masse", "guest", "basse"})
	gen := services.NewGenerator(s,
		services.NewSeriesScheduler(s, 0),
		services.NewAnswerScheduler(s, words, 0),
	)

	now := jan1.AddDate(0, 0, 2)
	report, err := gen.GenerateAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, services.GenerationReport{Leagues: 1, Series: 2, Answers: 9}, report)

	report, err = gen.GenerateAll(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, services.GenerationReport{Leagues: 1}, report)

	_, err = s.UpsertMembership(ctx, league.ID, "user-1", jan1)
	require.NoError(t, err)
	puzzles, err := services.NewPuzzleService(s).ActivePuzzles(ctx, "user-1", now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	assert.True(t, puzzles[0].ActiveAfter.Equal(now))
	assert.Nil(t, puzzles[0].CorrectAnswer)
}

func TestGenerationConcurrentRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedLeague(t, s, "Five Letters", 5)
	words := services.NewWordList([]string{"masse", "guest", "basse"})
	gen := services.NewGenerator(s,
		services.NewSeriesScheduler(s, 0),
		services.NewAnswerScheduler(s, words, 0),
	)
	now := jan1.AddDate(0, 0, 2)

	const runs = 4
	reports := make([]services.GenerationReport, runs)
	errs := make([]error, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], errs[i] = gen.GenerateAll(ctx, now)
		}(i)
	}
	wg.Wait()

	var created services.GenerationReport
	for i := range reports {
		require.NoError(t, errs[i])
		created.Series += reports[i].Series
		created.Answers += reports[i].Answers
	}
	assert.Equal(t, 2, created.Series)
	assert.Equal(t, 9, created.Answers)

	series, err := s.ListSeries(ctx, models.SeriesFilter{})
	require.NoError(t, err)
	require.Len(t, series, 2)
	sort.Slice(series, func(i, j int) bool { return series[i].StartDate.Before(series[j].StartDate) })
	assert.True(t, series[0].StartDate.Equal(jan1))
	assert.True(t, series[1].StartDate.Equal(series[0].EndDate))

	answers, err := s.ListAnswers(ctx, models.AnswerFilter{})
	require.NoError(t, err)
	require.Len(t, answers, 9)
	slots := make(map[int64]bool)
	for _, a := range answers {
		slot := a.ActiveAfter.Unix()
		assert.False(t, slots[slot], "duplicate slot %s", a.ActiveAfter)
		slots[slot] = true

		var owner *models.Series
		for i := range series {
			if series[i].ID == a.SeriesID {
				owner = &series[i]
			}
		}
		require.NotNil(t, owner, "answer %s has no series", a.ID)
		assert.False(t, a.ActiveAfter.Before(owner.StartDate))
		assert.True(t, a.ActiveAfter.Before(owner.EndDate))
	}
}
