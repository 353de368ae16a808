package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide structured logger. The engine tick path
// never logs; only the boundary layers do.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
	With().Timestamp().Logger()

// InitLogger applies the configured level to the global logger
func InitLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}
