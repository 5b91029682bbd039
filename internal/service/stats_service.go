package service

import (
	"context"
	"math"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityLimit = 5
	monthlyStatsWindow  = 6
)

// StatsService produces the read-only aggregate reports. GetDashboardStats
// fails as a whole or not at all; every other method degrades to its empty
// shape on storage failure so dashboards always render.
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	GetGoalTypeStats(ctx context.Context) []domain.GoalTypeStat
	GetProgressDistribution(ctx context.Context) []domain.ProgressBucket
	GetMonthlyStats(ctx context.Context) []domain.MonthlyGoalStat
	GetRecentActivity(ctx context.Context) *domain.RecentActivity
}

type statsService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	goalRepo     repository.GoalRepository
	categoryRepo repository.CategoryRepository
	activityRepo repository.RecentActivityRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	goalRepo repository.GoalRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.RecentActivityRepository,
) StatsService {
	return &statsService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		activityRepo: activityRepo,
	}
}

// GetDashboardStats runs the four entity aggregations in parallel and merges
// them into one timestamped report. If any aggregation fails the whole call
// fails; no partial dashboard is returned.
func (s *statsService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var (
		workoutStats  *domain.WorkoutStats
		exerciseStats *domain.ExerciseStats
		goalStats     *domain.GoalStats
		categoryStats []domain.CategoryStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workoutStats, err = s.workoutRepo.GetStatistics(gctx)
		return err
	})
	g.Go(func() (err error) {
		exerciseStats, err = s.exerciseRepo.GetStatistics(gctx)
		return err
	})
	g.Go(func() (err error) {
		goalStats, err = s.goalRepo.GetStatistics(gctx)
		return err
	})
	g.Go(func() (err error) {
		categoryStats, err = s.categoryRepo.GetStatistics(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if categoryStats == nil {
		categoryStats = []domain.CategoryStat{}
	}
	return &domain.DashboardStats{
		Workouts:    *workoutStats,
		Exercises:   *exerciseStats,
		Goals:       *goalStats,
		Categories:  categoryStats,
		LastUpdated: time.Now().UTC(),
	}, nil
}

// GetGoalTypeStats returns the goals-by-type breakdown, empty on failure.
func (s *statsService) GetGoalTypeStats(ctx context.Context) []domain.GoalTypeStat {
	stats, err := s.goalRepo.GetTypeStats(ctx)
	if err != nil {
		logrus.WithError(err).Error("goal type stats failed")
		return []domain.GoalTypeStat{}
	}
	if stats == nil {
		stats = []domain.GoalTypeStat{}
	}
	return stats
}

// GetProgressDistribution returns the progress bucket report, empty on
// failure.
func (s *statsService) GetProgressDistribution(ctx context.Context) []domain.ProgressBucket {
	buckets, err := s.goalRepo.GetProgressDistribution(ctx)
	if err != nil {
		logrus.WithError(err).Error("progress distribution failed")
		return []domain.ProgressBucket{}
	}
	if buckets == nil {
		buckets = []domain.ProgressBucket{}
	}
	return buckets
}

// GetMonthlyStats returns the goals-per-month report for the most recent six
// months, chronological, empty on failure.
func (s *statsService) GetMonthlyStats(ctx context.Context) []domain.MonthlyGoalStat {
	stats, err := s.goalRepo.GetMonthlyStats(ctx, monthlyStatsWindow)
	if err != nil {
		logrus.WithError(err).Error("monthly goal stats failed")
		return []domain.MonthlyGoalStat{}
	}
	if stats == nil {
		stats = []domain.MonthlyGoalStat{}
	}
	return stats
}

// GetRecentActivity fetches the most recently updated goals and most
// recently created workouts as two independent feeds. Either feed degrades
// to empty on failure.
func (s *statsService) GetRecentActivity(ctx context.Context) *domain.RecentActivity {
	activity := &domain.RecentActivity{
		Goals:    []domain.RecentGoal{},
		Workouts: []domain.RecentWorkout{},
	}

	goals, err := s.activityRepo.RecentGoals(ctx, recentActivityLimit)
	if err != nil {
		logrus.WithError(err).Error("recent goals feed failed")
	} else {
		for i := range goals {
			goal := &goals[i]
			activity.Goals = append(activity.Goals, domain.RecentGoal{
				ID:       goal.ID.Hex(),
				Title:    goal.Title,
				Progress: int64(math.Round(goal.ProgressPercent())),
				Updated:  goal.UpdatedAt,
			})
		}
	}

	workouts, err := s.activityRepo.RecentWorkouts(ctx, recentActivityLimit)
	if err != nil {
		logrus.WithError(err).Error("recent workouts feed failed")
	} else {
		for i := range workouts {
			workout := &workouts[i]
			activity.Workouts = append(activity.Workouts, domain.RecentWorkout{
				ID:         workout.ID.Hex(),
				Name:       workout.Name,
				Difficulty: workout.Difficulty,
				Created:    workout.CreatedAt,
			})
		}
	}

	return activity
}
