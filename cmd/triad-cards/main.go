package main

import (
	"os"

	"github.com/triadlabs/triad-cards/internal/api"
	"github.com/triadlabs/triad-cards/internal/config"
	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/logging"
	"github.com/triadlabs/triad-cards/internal/realtime"
	"github.com/triadlabs/triad-cards/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env when present; real deployments set env vars directly.
	_ = godotenv.Load()
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Starter card configuration file (required). Path may be provided via
	// TRIAD_CONFIG or defaults to ./triad_config.json in the current working
	// directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./triad_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid triad configuration", err, logging.Fields{"config_path": configPath, "hint": "create a triad_config.json with a 'starter_cards' array of card objects (name,kind,strength,dexterity,intelligence) and optional keys: server.address, sweep_interval_seconds"})
	}

	// Allow the DB path to be configured via TRIAD_DB. Default to a `data/`
	// directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/triad.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	hub := realtime.NewHub()
	handler := api.NewBattleHandler(repo, hub)
	authHandler := api.NewAuthHandler(repo, cfg.StarterCards)

	// Background sweeper: resolves battles whose selections are complete but
	// whose original trigger never finished (client navigated away, process
	// died mid-call).
	if err := startResolutionSweeper(repo, hub, cfg.SweepInterval); err != nil {
		logging.Fatal("Failed to start resolution sweeper", err, nil)
	}

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerProfile, handler.UpdatePlayerProfile)
		protected.GET(constants.RouteCards, handler.ListCards)
		protected.GET(constants.RouteNotifications, handler.ListNotifications)

		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleSelection, handler.SubmitSelection)
		protected.POST(constants.RouteBattleResolve, handler.ResolveBattle)
		protected.GET(constants.RouteBattleEvents, handler.BattleEvents)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
