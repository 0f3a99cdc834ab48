package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/loreweave/loreweave/pkg/internal"
	"github.com/loreweave/loreweave/pkg/internal/cache"
	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/events"
	"github.com/loreweave/loreweave/pkg/internal/http"
	"github.com/loreweave/loreweave/pkg/internal/services"
	"github.com/loreweave/loreweave/pkg/internal/session"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" _\n| |    ___  _ __ _____      _____  __ ___   _____\n| |   / _ \\| '__/ _ \\ \\ /\\ / / _ \\/ _` \\ \\ / / _ \\\n| |__| (_) | | |  __/\\ V  V /  __/ (_| |\\ V /  __/\n|_____\\___/|_|  \\___| \\_/\\_/ \\___|\\__,_| \\_/ \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Loreweave"), pkg.AppVersion)
	fmt.Printf("The roleplay community archive\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// In-process cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Optional session store for single-session tokens
	if err := session.NewClient(); err != nil {
		log.Error().Err(err).Msg("An error occurred when connecting to redis. Single-session checks will be disabled.")
	} else if session.Enabled() {
		log.Info().Msg("Session token store connected.")
	}

	// Optional audit event stream
	if err := events.NewPublisher(); err != nil {
		log.Error().Err(err).Msg("An error occurred when initializing event publisher.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer().Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	_ = events.Close()
}
