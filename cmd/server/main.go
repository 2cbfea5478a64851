package main

import (
	"flag"
	"log"
	"strings"

	"github.com/benbeisheim/chessmoves-backend/internal/config"
	"github.com/benbeisheim/chessmoves-backend/internal/controller"
	"github.com/benbeisheim/chessmoves-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(cfg.Clock, cfg.MatchmakingInterval)
	gameService := service.NewGameService(gameManager, cfg.StartFEN)

	origins := strings.Split(cfg.AllowOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	controller.SetupRoutes(app, gameService, origins)

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		gameManager.Close()
		log.Fatal(err)
	}
}
