package initializers

import (
	"net/http"
	"net/http/pprof"

	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/internal/metrics"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/competitor"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/handlers"
	"github.com/Enysssss/TP-Stacktim-Enys-Tchenar/pkg/squad"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"log"
	"os"
)

func startGetEnv() {
	if os.Getenv("ENVIRONMENT") == "PROD" {
		return
	}

	err := godotenv.Load("local.env")

	if err != nil {
		log.Fatalf("Error loading .env file")
	}
}

func startLogger() *zap.Logger {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		log.Fatalf("LOG_LEVEL environment variable not set")
	}

	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
	}

	return zapLogger
}

func startPostgres() *gorm.DB {
	dsn := os.Getenv("PG_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		log.Fatalf("Error initializing postgres: %v", err)
	}

	return db
}

func gormAutoMigrate(db *gorm.DB) {
	if os.Getenv("ENVIRONMENT") != "LOCAL" {
		return
	}

	if errAuto := db.AutoMigrate(
		&competitor.Competitor{},
		&squad.Squad{},
		&squad.SquadMember{},
	); errAuto != nil {
		log.Fatalf("AutoMigrate failed: %v", errAuto)
		return
	}
}

func initCompetitorRoutes(router *gin.Engine, competitorHandler *handlers.CompetitorHandler) {
	competitorsGroup := router.Group("/competitors")

	competitorsGroup.GET("", competitorHandler.ListCompetitors)
	competitorsGroup.GET("/leaderboard", competitorHandler.GetLeaderboard)
	competitorsGroup.GET("/:id", competitorHandler.GetCompetitor)
	competitorsGroup.POST("", competitorHandler.CreateCompetitor)
	competitorsGroup.PUT("/:id", competitorHandler.UpdateCompetitor)
	competitorsGroup.DELETE("/:id", competitorHandler.DeleteCompetitor)
}

func initSquadRoutes(router *gin.Engine, squadHandler *handlers.SquadHandler) {
	squadsGroup := router.Group("/squads")

	squadsGroup.GET("", squadHandler.ListSquads)
	squadsGroup.GET("/:id", squadHandler.GetSquad)
	squadsGroup.GET("/:id/roster", squadHandler.GetRoster)
	squadsGroup.POST("", squadHandler.CreateSquad)
	squadsGroup.PUT("/:id", squadHandler.UpdateSquad)
	squadsGroup.DELETE("/:id", squadHandler.DeleteSquad)
}

func initMetricsMdlwr(router *gin.Engine) {
	router.Use(metrics.GinMiddleware)
}

func initMetricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    ":" + os.Getenv("METRICS_PORT"),
		Handler: mux,
	}
}

func initpprof(router *gin.Engine) {
	pprofGroup := router.Group("/debug/pprof")

	pprofGroup.GET("/", gin.WrapF(pprof.Index))
	pprofGroup.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	pprofGroup.GET("/profile", gin.WrapF(pprof.Profile))
	pprofGroup.GET("/symbol", gin.WrapF(pprof.Symbol))
	pprofGroup.GET("/trace", gin.WrapF(pprof.Trace))
	pprofGroup.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	pprofGroup.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	pprofGroup.GET("/block", gin.WrapH(pprof.Handler("block")))
	pprofGroup.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
	pprofGroup.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
}
