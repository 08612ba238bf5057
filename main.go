package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"word-league-system/config"
	"word-league-system/database"
	"word-league-system/handlers"
	"word-league-system/services"
	"word-league-system/utils"
	"word-league-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration:\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer database.Close(db)
	store := database.NewStore(db)

	// --- Word list: R2 object kept in sync, or a local file ---
	words := services.NewWordList(nil)
	var r2 *utils.R2Client
	if cfg.Words.R2Key != "" {
		r2, err = utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
		syncWorker := workers.NewWordListSyncWorker(r2, cfg.Words.R2Key, words, cfg.Words.RefreshInterval)
		if _, err := syncWorker.SyncOnce(ctx); err != nil {
			log.Fatal("failed to load word list from R2: ", err)
		}
		go syncWorker.Run(ctx)
	} else {
		list, err := services.LoadWordListFile(cfg.Words.Path)
		if err != nil {
			log.Fatal("failed to load word list: ", err)
		}
		log.Printf("[WORDS] loaded %d word(s) from %s", words.Replace(list), cfg.Words.Path)
	}

	clock := clockwork.NewRealClock()
	lookahead := cfg.Scheduler.Lookahead()
	generator := services.NewGenerator(store,
		services.NewSeriesScheduler(store, lookahead),
		services.NewAnswerScheduler(store, words, lookahead),
	)
	scheduler := services.NewGenerationScheduler(generator, clock, cfg.Scheduler.Interval, cfg.Scheduler.RunOnStart)
	if cfg.Scheduler.Enabled {
		if err := scheduler.Start(); err != nil {
			log.Fatal("failed to start scheduler: ", err)
		}
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitBytes,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-Request-ID",
		MaxAge:       86400, // 24 hours
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "words": words.Len()})
	})

	handlers.SetupWordleRoutes(app, services.NewPuzzleService(store), clock)
	handlers.SetupLeagueRoutes(app, services.NewLeagueService(store), clock)

	admin := handlers.AdminConfig{
		ServiceToken: cfg.Server.ServiceToken,
		Generation:   scheduler,
		Words:        words,
		LocalPath:    cfg.Words.Path,
	}
	if r2 != nil {
		admin.Uploader = r2
		admin.Key = cfg.Words.R2Key
	}
	handlers.SetupAdminRoutes(app, admin)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Server.Port)
	log.Printf("✅ CORS configured for origins: %v", cfg.Server.AllowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Printf("Shutdown error: %v", err)
	}
}
