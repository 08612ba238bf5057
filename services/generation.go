// services/generation.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"word-league-system/models"
)

// LeagueLister lists leagues for batch jobs.
type LeagueLister interface {
	ListLeagues(ctx context.Context, f models.LeagueFilter) ([]models.League, error)
}

// Generator runs series and answer generation over every league.
type Generator struct {
	leagues LeagueLister
	series  *SeriesScheduler
	answers *AnswerScheduler
}

func NewGenerator(leagues LeagueLister, series *SeriesScheduler, answers *AnswerScheduler) *Generator {
	return &Generator{leagues: leagues, series: series, answers: answers}
}

// GenerationReport counts rows inserted by one run.
type GenerationReport struct {
	Leagues int `json:"leagues"`
	Series  int `json:"series"`
	Answers int `json:"answers"`
}

// GenerateAllSeries extends series coverage of every league. A failing league is logged and
// the others still run; all failures come back joined.
func (g *Generator) GenerateAllSeries(ctx context.Context, now time.Time) (int, error) {
	leagues, err := g.listLeagues(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	var errs []error
	for _, league := range leagues {
		n, err := g.series.EnsureSeriesCoverage(ctx, league, now)
		total += n
		if err != nil {
			log.Printf("[Generate] ❌ series for %s: %v", league.Slug, err)
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// GenerateAllAnswers extends answer coverage of every league, with the same failure
// handling as GenerateAllSeries.
func (g *Generator) GenerateAllAnswers(ctx context.Context, now time.Time) (int, error) {
	leagues, err := g.listLeagues(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	var errs []error
	for _, league := range leagues {
		n, err := g.answers.GenerateAnswers(ctx, league, now)
		total += n
		if err != nil {
			log.Printf("[Generate] ❌ answers for %s: %v", league.Slug, err)
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// GenerateAll runs series generation, then answer generation, so new answers find their
// series.
func (g *Generator) GenerateAll(ctx context.Context, now time.Time) (GenerationReport, error) {
	var report GenerationReport
	leagues, err := g.listLeagues(ctx)
	if err != nil {
		return report, err
	}
	report.Leagues = len(leagues)

	var seriesErr, answersErr error
	report.Series, seriesErr = g.GenerateAllSeries(ctx, now)
	report.Answers, answersErr = g.GenerateAllAnswers(ctx, now)
	return report, errors.Join(seriesErr, answersErr)
}

func (g *Generator) listLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := g.leagues.ListLeagues(ctx, models.LeagueFilter{
		ListOptions: models.ListOptions{Sort: []string{"slug"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}
