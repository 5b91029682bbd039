package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/fitness-tracker/internal/api"
	"fittrack/fitness-tracker/internal/config"
	"fittrack/fitness-tracker/internal/repository/mongo"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("starting fitness tracker server ...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer func() {
		log.Info("disconnecting mongodb ...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("disconnect mongodb: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// Index creation runs in the background so a slow mongod does not
	// delay startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.WithError(err).Warn("ensure indexes failed")
			return
		}
		log.Info("database indexes ensured")
	}()

	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	categoryRepo := mongo.NewMongoCategoryRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	activityRepo := mongo.NewMongoActivityRepository(appDB)

	exerciseService := service.NewExerciseService(exerciseRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	goalService := service.NewGoalService(goalRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	sessionService := service.NewSessionService(sessionRepo)
	statsService := service.NewStatsService(exerciseRepo, workoutRepo, goalRepo, categoryRepo, activityRepo)

	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(
		router,
		dbClient,
		exerciseService,
		workoutService,
		goalService,
		categoryService,
		sessionService,
		statsService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server ...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
