package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rajamantri/internal/common/clock"
	"github.com/KirkDiggler/rajamantri/internal/common/idgen"
	"github.com/KirkDiggler/rajamantri/internal/common/logger"
	"github.com/KirkDiggler/rajamantri/internal/config"
	"github.com/KirkDiggler/rajamantri/internal/handlers/api"
	"github.com/KirkDiggler/rajamantri/internal/handlers/discord"
	"github.com/KirkDiggler/rajamantri/internal/handlers/ws"
	"github.com/KirkDiggler/rajamantri/internal/repositories/results"
	"github.com/KirkDiggler/rajamantri/internal/repositories/room"
	"github.com/KirkDiggler/rajamantri/internal/services/delivery"
	gameService "github.com/KirkDiggler/rajamantri/internal/services/game"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
	"github.com/KirkDiggler/rajamantri/internal/shuffle"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(nil)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	idGenerator := idgen.New(&idgen.Config{CodeLength: cfg.RoomCodeLength})
	clk := clock.New()

	// Initialize repositories
	roomRepo, err := room.NewMemory(&room.Config{
		IDGenerator: idGenerator,
		Clock:       clk,
		MaxRooms:    cfg.MaxRooms,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create room registry")
	}

	gameCfg := &gameService.Config{
		RoomRepo:            roomRepo,
		Clock:               clk,
		IDGenerator:         idGenerator,
		DefaultAdjudication: cfg.Adjudication,
		Logger:              &log,
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	resultsRepo, err := connectResults(redisClient)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Results ledger disabled")
	} else {
		gameCfg.ResultsRepo = resultsRepo
	}

	// Initialize services
	shuffler := shuffle.New(&shuffle.Config{})
	gameCfg.Shuffler = shuffler

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{Source: shuffler})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create messaging service")
	}
	gameCfg.Messaging = messagingSvc

	router := delivery.New(&delivery.Config{Logger: &log})
	gameCfg.Publisher = router

	gameSvc, err := gameService.New(gameCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game service")
	}

	// Transports
	gateway, err := ws.New(&ws.Config{
		GameService:    gameSvc,
		IDGenerator:    idGenerator,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitPerSecond,
		RateBurst:      cfg.RateLimitBurst,
		Logger:         &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket gateway")
	}
	if err := router.Register(ws.Prefix, gateway); err != nil {
		log.Fatal().Err(err).Msg("Failed to register websocket transport")
	}

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = startDiscord(cfg, gameSvc, messagingSvc, router, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start Discord bot")
		}
	} else {
		log.Info().Msg("DISCORD_TOKEN not set, Discord gateway disabled")
	}

	server, err := api.New(&api.Config{
		GameService:    gameSvc,
		Websocket:      gateway,
		AllowedOrigins: cfg.AllowedOrigins,
		PublicURL:      cfg.PublicURL,
		Clock:          clk,
		Logger:         &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create HTTP server")
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("Court is in session")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error().Err(err).Msg("Error stopping bot")
		}
	}

	log.Info().Msg("Server has been shut down")
}

// connectResults returns the results ledger when Redis answers a ping
func connectResults(client *redis.Client) (results.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	repo, err := results.NewRedis(&results.Config{RedisClient: client})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func startDiscord(cfg *config.Config, gameSvc gameService.Service, messagingSvc messaging.Service, router *delivery.Router, log *zerolog.Logger) (*discord.Bot, error) {
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		GameService:   gameSvc,
		Messaging:     messagingSvc,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}

	if err := router.Register(discord.Prefix, bot); err != nil {
		return nil, err
	}

	if err := bot.Start(); err != nil {
		return nil, err
	}
	return bot, nil
}
