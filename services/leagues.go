// services/leagues.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"word-league-system/models"

	"github.com/gosimple/slug"
)

type LeagueService struct {
	store LeagueStore
}

func NewLeagueService(store LeagueStore) *LeagueService {
	return &LeagueService{store: store}
}

// ListLeagues returns every league by name, flagging those userID actively belongs to.
func (s *LeagueService) ListLeagues(ctx context.Context, userID string) ([]models.League, error) {
	leagues, err := s.store.ListLeagues(ctx, models.LeagueFilter{
		ListOptions: models.ListOptions{Sort: []string{"name"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	if userID == "" {
		return leagues, nil
	}

	active := true
	memberships, err := s.store.ListMemberships(ctx, models.MembershipFilter{UserID: userID, Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	member := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		member[m.LeagueID] = true
	}
	for i := range leagues {
		leagues[i].IsMember = member[leagues[i].ID]
	}
	return leagues, nil
}

// LeagueBySlug finds one league. The input is slugified first, so "Five Letters" finds
// "five-letters".
func (s *LeagueService) LeagueBySlug(ctx context.Context, name string) (*models.League, error) {
	key := slug.Make(name)
	if key == "" {
		return nil, models.NewValidationError("league_slug", "league slug is required")
	}
	leagues, err := s.store.ListLeagues(ctx, models.LeagueFilter{Slug: key})
	if err != nil {
		return nil, fmt.Errorf("failed to load league %s: %w", key, err)
	}
	return only(leagues, "league")
}

// JoinLeague adds userID to the league or reactivates a past membership.
func (s *LeagueService) JoinLeague(ctx context.Context, userID, leagueSlug string, now time.Time) (*models.Membership, error) {
	if userID == "" {
		return nil, models.NewValidationError("user_id", "user id is required")
	}
	league, err := s.LeagueBySlug(ctx, leagueSlug)
	if err != nil {
		return nil, err
	}
	m, err := s.store.UpsertMembership(ctx, league.ID, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to join %s: %w", league.Slug, err)
	}
	log.Printf("[Leagues] user %s joined %s", userID, league.Slug)
	return m, nil
}

// LeaveLeague deactivates the membership. Guesses and history are kept.
func (s *LeagueService) LeaveLeague(ctx context.Context, userID, leagueSlug string, now time.Time) error {
	if userID == "" {
		return models.NewValidationError("user_id", "user id is required")
	}
	league, err := s.LeagueBySlug(ctx, leagueSlug)
	if err != nil {
		return err
	}
	if err := s.store.DeactivateMembership(ctx, league.ID, userID, now); err != nil {
		return fmt.Errorf("failed to leave %s: %w", league.Slug, err)
	}
	log.Printf("[Leagues] user %s left %s", userID, league.Slug)
	return nil
}
