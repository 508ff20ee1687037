package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"stickerme_bot/clock"
	"stickerme_bot/config"
	"stickerme_bot/databases/sqlite"
	"stickerme_bot/discord_bot"
	"stickerme_bot/image_generator"
	"stickerme_bot/image_store"
	"stickerme_bot/logger"
	"stickerme_bot/metrics"
	"stickerme_bot/repositories/image_generations"
	"stickerme_bot/stability_api"
)

var (
	envFile        string
	guildID        string
	removeCommands bool
)

var rootCmd = &cobra.Command{
	Use:           "stickerme_bot",
	Short:         "Discord bot that generates images with Stability AI",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to a .env file, ignored when missing")
	rootCmd.Flags().StringVar(&guildID, "guild", "", "Guild ID. If not passed - bot registers commands globally")
	rootCmd.Flags().BoolVar(&removeCommands, "remove", false, "Delete all commands when bot exits")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Bot exited with error")
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("guild") {
		cfg.GuildID = guildID
	}

	if cmd.Flags().Changed("remove") {
		cfg.RemoveCommands = removeCommands
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		metricsServer := startMetricsServer(cfg.MetricsAddr)
		defer shutdownMetricsServer(metricsServer)
	}

	sqliteDB, err := sqlite.New(ctx, cfg.DBFile)
	if err != nil {
		return err
	}
	defer sqliteDB.Close()

	systemClock := clock.NewClock()

	generationRepo, err := image_generations.NewRepository(&image_generations.Config{
		DB:    sqliteDB,
		Clock: systemClock,
	})
	if err != nil {
		return err
	}

	imageStore, err := image_store.New(image_store.Config{
		Dir:   cfg.ImagesDir,
		Clock: systemClock,
	})
	if err != nil {
		return err
	}

	stabilityAPI, err := stability_api.New(stability_api.Config{
		APIKey: cfg.StabilityAPIKey,
		Host:   cfg.StabilityAPIHost,
		Model:  cfg.StabilityModel,
	})
	if err != nil {
		return err
	}

	generator, err := image_generator.New(image_generator.Config{
		StabilityAPI:        stabilityAPI,
		ImageStore:          imageStore,
		ImageGenerationRepo: generationRepo,
	})
	if err != nil {
		return err
	}

	bot, err := discord_bot.New(discord_bot.Config{
		BotToken:       cfg.DiscordToken,
		GuildID:        cfg.GuildID,
		Generator:      generator,
		RemoveCommands: cfg.RemoveCommands,
	})
	if err != nil {
		return err
	}

	bot.Start(ctx)

	log.Info().Msg("Gracefully shutting down.")

	return nil
}

func startMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Serving metrics")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	return server
}

func shutdownMetricsServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Error shutting down metrics server")
	}
}
