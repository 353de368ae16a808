package main

import (
	"errors"

	"github.com/spf13/viper"
)

// LoadConfig reads tankarena.yaml from configDir and sets defaults for
// every key. A missing config file is fine; everything has a default.
func LoadConfig(configDir string) error {
	viper.SetDefault("listenAddr", ":8080")
	viper.SetDefault("clientDir", "../client")
	viper.SetDefault("dbPath", "tankarena.db")
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("limits.maxSessions", 100)
	viper.SetDefault("limits.maxConnsPerIP", 5)
	viper.SetDefault("limits.maxTotalConns", 1000)

	viper.SetDefault("game.fragTarget", 20)
	viper.SetDefault("game.botCount", 3)
	viper.SetDefault("game.enemyQuota", 20)
	viper.SetDefault("game.respawnDelayMs", 2000)

	viper.SetConfigName("tankarena")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// configuredMatch applies server-level overrides to the built-in mode
// defaults. Zero/unset viper values leave the defaults alone so the
// engine stays usable without LoadConfig (tests construct configs
// directly).
func configuredMatch(mode GameMode) MatchConfig {
	cfg := DefaultConfig(mode)
	if v := viper.GetInt("game.fragTarget"); v > 0 && cfg.IsDeathmatch() {
		cfg.FragTarget = v
	}
	if v := viper.GetInt("game.botCount"); v > 0 && mode == ModeBotmatch {
		cfg.BotCount = v
	}
	if v := viper.GetInt("game.enemyQuota"); v > 0 && mode == ModeCoop {
		cfg.EnemyQuota = v
	}
	if v := viper.GetFloat64("game.respawnDelayMs"); v > 0 && cfg.IsDeathmatch() {
		cfg.RespawnDelayMs = v
	}
	return cfg
}
