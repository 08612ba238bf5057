// handlers/admin.go
package handlers

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"word-league-system/middleware"
	"word-league-system/services"
	"word-league-system/utils"

	"github.com/gofiber/fiber/v2"
)

// Generation runs one generation pass.
type Generation interface {
	RunNow(ctx context.Context) (services.GenerationReport, error)
}

// ObjectUploader stores an uploaded word list remotely (R2).
type ObjectUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// AdminConfig wires the internal routes. Uploader and LocalPath are alternatives: a new
// word list goes to the bucket under Key when Uploader is set, otherwise to LocalPath.
type AdminConfig struct {
	ServiceToken string
	Generation   Generation
	Words        *services.WordList
	Uploader     ObjectUploader
	Key          string
	LocalPath    string
}

func SetupAdminRoutes(app *fiber.App, cfg AdminConfig) {
	// 🔐 Internal only, service token required
	admin := app.Group("/admin", middleware.ServiceTokenMiddleware(cfg.ServiceToken))

	admin.Post("/generate", func(c *fiber.Ctx) error {
		report, err := cfg.Generation.RunNow(c.UserContext())
		if err != nil {
			log.Printf("[Generate] ❌ manual run: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": err.Error(),
				"report": report,
			})
		}
		return c.JSON(report)
	})

	admin.Get("/words", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"words": cfg.Words.Len()})
	})

	admin.Post("/words", func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": `must upload a word list as form file "file"`})
		}

		target := cfg.LocalPath
		if cfg.Uploader != nil {
			target = cfg.Key
		}
		if !strings.EqualFold(filepath.Ext(fh.Filename), filepath.Ext(target)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "word list must be a " + filepath.Ext(target) + " file",
			})
		}

		data, err := utils.ReadUpload(fh)
		if err != nil {
			return writeError(c, err)
		}
		words, err := services.ParseWordList(fh.Filename, data)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
		if services.NewWordList(words).Len() == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "word list has no usable words"})
		}

		if cfg.Uploader != nil {
			err = cfg.Uploader.Upload(c.UserContext(), cfg.Key, data, fh.Header.Get("Content-Type"))
		} else {
			err = utils.WriteFileAtomic(cfg.LocalPath, data)
		}
		if err != nil {
			return writeError(c, err)
		}

		n := cfg.Words.Replace(words)
		log.Printf("[WORDS] ✅ uploaded %s with %d usable word(s)", fh.Filename, n)
		return c.JSON(fiber.Map{"words": n})
	})
}
