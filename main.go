package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Himanshu790310/biryaniclub7/configs"
	"github.com/Himanshu790310/biryaniclub7/middlewares"
	"github.com/Himanshu790310/biryaniclub7/pkg/logger"
	"github.com/Himanshu790310/biryaniclub7/pkg/telemetry"
	"github.com/Himanshu790310/biryaniclub7/pkg/upi"
	"github.com/Himanshu790310/biryaniclub7/routes"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/Himanshu790310/biryaniclub7/utils"

	"github.com/gin-gonic/gin"
)

const serviceName = "biryani-club"

func main() {
	cfg := configs.LoadConfig()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	clock := utils.ClockIn(cfg.Location())

	// DB
	db, err := configs.ConnectionDB(cfg, clock, log)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	// migrate + seed
	if err := configs.SetupDatabase(db); err != nil {
		log.WithError(err).Fatal("migrate database")
	}
	if err := configs.Seed(db, cfg, log); err != nil {
		log.WithError(err).Fatal("seed database")
	}

	svc := services.New(db, services.Options{
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		QR:        upi.New(cfg.UPIPayeeVPA, cfg.UPIPayeeName),
		Logger:    log,
	})

	// HTTP
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middlewares.RequestLogger(log), gin.Recovery())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	routes.RegisterRoutes(r, svc, cfg)

	var handler http.Handler = r
	if cfg.TracingEnabled {
		shutdown, err := telemetry.Setup(serviceName, os.Stdout)
		if err != nil {
			log.WithError(err).Fatal("setup tracing")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
		handler = telemetry.Handler(r, serviceName, "/health")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
