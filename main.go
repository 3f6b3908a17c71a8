package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tapr/configs"
	"tapr/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := configs.NewLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// DB
	db, err := configs.ConnectionDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	if err := configs.SeedAdmin(db, cfg, log); err != nil {
		log.WithError(err).Fatal("seed admin")
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db, cfg, log); err != nil {
			log.WithError(err).Fatal("seed demo data")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := routes.New(cfg, db, log)
	go app.Hub.Run(ctx)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.Engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
		os.Exit(1)
	}
	log.Info("server stopped")
}
