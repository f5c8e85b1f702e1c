package initializers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/handlers"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RunStacktim() {
	startGetEnv()

	zapLogger := startLogger()

	defer func(zapLogger *zap.Logger) {
		err := zapLogger.Sync()
		if err != nil {
			log.Fatal("Error syncing zap logger:", err)
		}
	}(zapLogger)

	logger := zapLogger.Sugar()
	db := startPostgres()

	gormAutoMigrate(db)

	competitorRepo := competitor.NewCompetitorsRepoPg(logger, db)
	squadRepo := squad.NewSquadsRepoPg(logger, db)

	competitorHandler := handlers.NewCompetitorHandler(logger, competitorRepo)
	squadHandler := handlers.NewSquadHandler(logger, squadRepo)

	router := gin.New()
	initMetricsMdlwr(router)

	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Skipper: func(c *gin.Context) bool {
			return c.Request.URL.Path == "/metrics" && c.Request.Method == "GET"
		},
	}))

	router.Use(ginzap.RecoveryWithZap(zapLogger, true))

	initCompetitorRoutes(router, competitorHandler)
	initSquadRoutes(router, squadHandler)
	metricsSrv := initMetricsServer()
	initpprof(router)

	srv := &http.Server{
		Addr:    ":" + os.Getenv("PORT"),
		Handler: router,
	}

	go func() {
		logger.Info("Starting main server on port " + os.Getenv("PORT"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen: %s\n", err)
		}
	}()

	go func() {
		logger.Info("Starting metrics server on port " + os.Getenv("METRICS_PORT"))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down the server")

	wg := &sync.WaitGroup{}

	wg.Add(2)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatal("the server was forced to shutdown:", err)
		}
		wg.Done()
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Fatal("the metrics server was forced to shutdown:", err)
		}
		wg.Done()
	}()

	wg.Wait()

	logger.Info("Server exited")
}
