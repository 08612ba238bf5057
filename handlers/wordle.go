// handlers/wordle.go
package handlers

import (
	"word-league-system/middleware"
	"word-league-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
)

type checkRequest struct {
	Guess    string `json:"guess" form:"guess"`
	AnswerID string `json:"answer_id" form:"answer_id"`
}

func SetupWordleRoutes(app *fiber.App, puzzles *services.PuzzleService, clock clockwork.Clock) {
	// 🔐 Every puzzle route needs the caller identity
	requireUser := middleware.UserContextMiddleware(true)

	app.All("/wordle/check", requireUser, func(c *fiber.Ctx) error {
		var req checkRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
			}
		}
		if req.Guess == "" {
			req.Guess = c.Query("guess")
		}
		if req.AnswerID == "" {
			req.AnswerID = c.Query("answer_id")
		}

		result, err := puzzles.SubmitGuess(c.UserContext(), middleware.UserID(c), req.AnswerID, req.Guess, clock.Now().UTC())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(result)
	})

	activePuzzles := func(c *fiber.Ctx) error {
		list, err := puzzles.ActivePuzzles(c.UserContext(), middleware.UserID(c), clock.Now().UTC())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	}
	app.Get("/puzzles", requireUser, activePuzzles)
	app.Post("/puzzles", requireUser, activePuzzles)

	app.Get("/puzzles/:answer_id/guesses", requireUser, func(c *fiber.Ctx) error {
		history, err := puzzles.GuessHistory(c.UserContext(), middleware.UserID(c), c.Params("answer_id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(history)
	})
}
