package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	go_invite "github.com/bazario/go-invite"
	"github.com/bazario/go-invite/internal/config"
	db2 "github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/internal/http-server/api"
	"github.com/bazario/go-invite/lib/sl"
)

const (
	envLocal    = "local"
	envDev      = "dev"
	envProd     = "prod"
	logFileName = "invite.log"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	logger := setupLogger(conf.Env, *logPath)
	logger.Info("starting invite server", slog.String("config", *configPath), slog.String("env", conf.Env))

	rate, err := conf.ExchangeRate()
	if err != nil {
		logger.Error("load exchange rate", sl.Err(err))
		os.Exit(1)
	}

	db := db2.InitDB(conf.Database.Path)
	svc := go_invite.NewInviteService(db, rate)

	if err := api.New(conf, logger, svc); err != nil {
		logger.Error("api server stopped", sl.Err(err))
		os.Exit(1)
	}
}

func setupLogger(env, path string) *slog.Logger {
	var logger *slog.Logger
	var logFile *os.File
	var err error

	if env != envLocal {
		logPath := logFilePath(path)
		logFile, err = os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("error opening log file: ", err)
		}
		log.Printf("env: %s; log file: %s", env, logPath)
	}

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		logger = slog.New(
			slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log.Fatal("invalid environment: ", env)
	}

	return logger
}

func logFilePath(path string) string {
	return filepath.Join(path, logFileName)
}
