package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rates-bot/internal/bootstrap"
	"rates-bot/internal/bot"
	"rates-bot/internal/config"
	"rates-bot/internal/handlers"
	"rates-bot/internal/logger"
	"rates-bot/internal/workers"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.InitBootstrap(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("bootstrap")
	}

	telegram, err := bot.NewTelegram(cfg.Bot.Token, cfg.Bot.Proxy, cfg.Bot.Debug, log)
	if err != nil {
		app.Close()
		log.WithError(err).Fatal("start telegram bot")
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: bootstrap.InitRoutes(app.Registry, log),
	}
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("ops server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("ops server failed")
			stop()
		}
	}()

	handler := handlers.NewCommandHandler(app.Rates, app.Users, telegram, app.Metrics, log)
	pool := workers.NewGenericWorker[handlers.Message]("updates", cfg.Bot.Workers, handler.Handle, log)
	pool.Run(ctx, telegram.Updates(ctx))

	bootstrap.GracefulShutdown(srv, app)
	log.Info("bot stopped")
}
