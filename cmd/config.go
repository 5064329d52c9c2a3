package main

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH"`
	BlobDir              string        `env:"BLOB_DIR,default=./blobs"`
	MaxUploadBytes       int64         `env:"MAX_UPLOAD_BYTES,default=10485760"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	UploadTimeout        time.Duration `env:"UPLOAD_TIMEOUT,default=30s"`
	HistoryWindow        time.Duration `env:"HISTORY_WINDOW,default=168h"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AuthTokenKey         string        `env:"AUTH_TOKEN_KEY,required=true"`
	SeedUsers            bool          `env:"SEED_USERS,default=true"`
}

// demoUsers mirrors the accounts provisioned on first run.
var demoUsers = map[string]string{
	"Saurabh": "saurabh",
	"Neha":    "neha",
	"Rajiv":   "rajiv",
	"Pralhad": "pralhad",
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
