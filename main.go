package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
)

func main() {
	configDir := flag.String("config", ".", "directory containing tankarena.yaml")
	flag.Parse()

	if err := LoadConfig(*configDir); err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	InitLogger(viper.GetString("logLevel"))

	db, err := OpenDB(viper.GetString("dbPath"))
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	metrics := NewAnalytics(db)
	defer metrics.Stop()

	hub := NewHub(db, metrics)
	go hub.Run()

	router := SetupRouter(hub, viper.GetString("clientDir"))

	addr := viper.GetString("listenAddr")
	server := &http.Server{Addr: addr, Handler: router}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-stop
	logger.Info().Msg("shutting down")
	hub.sessions.Stop()
	server.Close()
}
