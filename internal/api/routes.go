package api

import (
	"net/http"

	repomongo "fittrack/fitness-tracker/internal/repository/mongo"
	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoutes registers all HTTP routes on the router.
func SetupRoutes(
	router *gin.Engine,
	mongoClient *mongo.Client,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	goalService service.GoalService,
	categoryService service.CategoryService,
	sessionService service.SessionService,
	statsService service.StatsService,
) {
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	goalHandler := NewGoalHandler(goalService)
	categoryHandler := NewCategoryHandler(categoryService)
	sessionHandler := NewSessionHandler(sessionService)
	statsHandler := NewStatsHandler(statsService)

	router.Use(RequestIDMiddleware(), RequestLogMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if err := repomongo.Ping(c.Request.Context(), mongoClient); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": "connected",
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		exerciseGroup := apiV1.Group("/exercises")
		{
			// Static paths before the :id wildcard.
			exerciseGroup.GET("/statistics", exerciseHandler.GetExerciseStatistics)
			exerciseGroup.GET("/filter-options", exerciseHandler.GetFilterOptions)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:id/related", exerciseHandler.GetRelatedExercises)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.GET("/statistics", workoutHandler.GetWorkoutStatistics)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		goalGroup := apiV1.Group("/goals")
		{
			goalGroup.GET("/statistics", goalHandler.GetGoalStatistics)
			goalGroup.GET("/overall-stats", goalHandler.GetOverallStats)
			goalGroup.GET("/recent", goalHandler.GetRecentGoals)
			goalGroup.POST("/check-achievements", goalHandler.CheckAchievements)
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.GET("/:id", goalHandler.GetGoal)
			goalGroup.PUT("/:id", goalHandler.UpdateGoal)
			goalGroup.PUT("/:id/progress", goalHandler.UpdateProgress)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
		}

		categoryGroup := apiV1.Group("/categories")
		{
			categoryGroup.GET("/statistics", categoryHandler.GetCategoryStatistics)
			categoryGroup.POST("", categoryHandler.CreateCategory)
			categoryGroup.GET("", categoryHandler.ListCategories)
		}

		sessionGroup := apiV1.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.PUT("/:id/complete", sessionHandler.CompleteSession)
			sessionGroup.DELETE("/:id", sessionHandler.DeleteSession)
		}

		statsGroup := apiV1.Group("/stats")
		{
			statsGroup.GET("/dashboard", statsHandler.GetDashboard)
			statsGroup.GET("/goal-types", statsHandler.GetGoalTypes)
			statsGroup.GET("/progress-distribution", statsHandler.GetProgressDistribution)
			statsGroup.GET("/monthly", statsHandler.GetMonthly)
			statsGroup.GET("/recent-activity", statsHandler.GetRecentActivity)
		}
	}
}
