// handlers/leagues.go
package handlers

import (
	"word-league-system/middleware"
	"word-league-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
)

type membershipRequest struct {
	LeagueSlug string `json:"league_slug" form:"league_slug"`
}

func parseMembership(c *fiber.Ctx) (membershipRequest, error) {
	var req membershipRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, err
		}
	}
	if req.LeagueSlug == "" {
		req.LeagueSlug = c.Query("league_slug")
	}
	return req, nil
}

func SetupLeagueRoutes(app *fiber.App, leagues *services.LeagueService, clock clockwork.Clock) {
	// 🔓 Listing works anonymously; is_member is set when X-User-ID is present
	optionalUser := middleware.UserContextMiddleware(false)
	// 🔐 Membership changes need the caller identity
	requireUser := middleware.UserContextMiddleware(true)

	g := app.Group("/leagues")

	g.Get("/", optionalUser, func(c *fiber.Ctx) error {
		list, err := leagues.ListLeagues(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	})

	g.Get("/:slug", func(c *fiber.Ctx) error {
		league, err := leagues.LeagueBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(league)
	})

	g.Post("/join", requireUser, func(c *fiber.Ctx) error {
		req, err := parseMembership(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}
		m, err := leagues.JoinLeague(c.UserContext(), middleware.UserID(c), req.LeagueSlug, clock.Now().UTC())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(m)
	})

	g.Post("/leave", requireUser, func(c *fiber.Ctx) error {
		req, err := parseMembership(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
		}
		if err := leagues.LeaveLeague(c.UserContext(), middleware.UserID(c), req.LeagueSlug, clock.Now().UTC()); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
