package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"bami/internal/discord"
	"bami/internal/playback"
	"bami/internal/resolver"
	"bami/internal/status"
	"bami/internal/voice"
	"bami/pkg/config"
	"bami/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting bami...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Root context; cancelled on shutdown signal. Event-processing tasks
	// check it before starting and in-flight ones finish naturally.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		log.Fatal("Failed to create Discord session", zap.Error(err))
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages
	session.State.TrackVoice = true

	// Core wiring: engine -> notifier -> registry -> router
	engine := playback.NewEngine(cfg.YtdlpPath, cfg.FfmpegPath, logger.Named("playback"))
	notifier := voice.NewNotifier(session, logger.Named("notifier"))
	registry := voice.NewRegistry(
		&voice.SessionJoiner{Session: session},
		engine,
		notifier.TrackStarted,
		logger.Named("voice"),
	)
	res := resolver.New(cfg.YtdlpPath, logger.Named("resolver"))

	router := discord.NewRouter(ctx, session, registry, res, logger.Named("discord"))
	router.Attach()

	if err := session.Open(); err != nil {
		log.Fatal("Failed to open Discord session", zap.Error(err))
	}
	defer session.Close()

	log.Info("Logged in",
		zap.String("username", session.State.User.Username),
		zap.String("user_id", session.State.User.ID),
	)

	if err := discord.RegisterCommands(session, cfg.GuildID); err != nil {
		log.Error("Failed to register commands", zap.Error(err))
	}

	// Status server
	statusSrv := status.New(registry, cfg.Port, cfg.IsProduction(), logger.Named("status"))
	go func() {
		if err := statusSrv.Run(ctx); err != nil {
			log.Error("Status server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("Received signal, shutting down...", zap.String("signal", s.String()))

	cancel()
	registry.Shutdown()
	log.Info("Shutdown complete")
}
