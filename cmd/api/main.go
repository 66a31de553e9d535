package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bookstore/pkg/bookstore"
	"bookstore/pkg/bookstore/memory"
	"bookstore/pkg/logger"

	_ "bookstore/docs"
)

var (
	svc    *bookstore.Service
	log    *zap.Logger
	tracer trace.Tracer
)

const shutdownGrace = 10 * time.Second

// @title Bookstore API
// @version 1.0
// @description In-memory bookstore catalog and ordering API
// @host localhost:8080
// @BasePath /api
func main() {
	_ = godotenv.Load()
	cfg := LoadConfig()

	var err error
	log, err = logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.Tracing {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			log.Fatal("init tracing", zap.Error(err))
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		otel.SetTracerProvider(tp)
		defer tp.Shutdown(context.Background())
	}
	tracer = otel.Tracer("bookstore")

	store := memory.New()
	if cfg.SeedOnStart {
		if err := bookstore.Seed(context.Background(), store); err != nil {
			log.Fatal("seed data", zap.Error(err))
		}
		log.Info("seeded sample catalog")
	}
	svc = bookstore.NewService(store, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           cors.Default().Handler(newRouter()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server closed", zap.Error(err))
	}
}
