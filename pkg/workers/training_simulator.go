package workers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dkovalev/modelmart/pkg/domain"
	"github.com/dkovalev/modelmart/pkg/logger"
)

type TrainingModelRepository interface {
	ListTraining(ctx context.Context) ([]domain.Model, error)
	UpdateTraining(ctx context.Context, id int64, progress int, status domain.ModelStatus, rating float64, reviews int) error
}

// trainingSimulator advances every training model's progress on a fixed tick.
// There is no real training anywhere in the product; a model becomes "ready"
// once its simulated progress hits 100, picking up a plausible rating on the
// way.
type trainingSimulator struct {
	repo     TrainingModelRepository
	interval time.Duration
}

func NewTrainingSimulator(repo TrainingModelRepository, interval time.Duration) (*trainingSimulator, error) {
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	return &trainingSimulator{
		repo:     repo,
		interval: interval,
	}, nil
}

func (t *trainingSimulator) Name() string { return "training_simulator" }

func (t *trainingSimulator) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", t.Name(), "interval", t.interval)
	defer slog.Info("Worker stopped", "name", t.Name())

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.advance(ctx)
		}
	}
}

func (t *trainingSimulator) advance(ctx context.Context) {
	models, err := t.repo.ListTraining(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing training models", logger.Err(err))
		return
	}

	for _, model := range models {
		progress := model.TrainingProgress + rand.Intn(10) + 5

		if progress >= 100 {
			rating := 4 + rand.Float64()
			reviews := rand.Intn(10) + 1
			if err := t.repo.UpdateTraining(ctx, model.ID, 100, domain.ModelStatusReady, rating, reviews); err != nil {
				slog.ErrorContext(ctx, "completing training", "model", model.Name, logger.Err(err))
				continue
			}
			slog.InfoContext(ctx, "model training complete", "model", model.Name)
			continue
		}

		if err := t.repo.UpdateTraining(ctx, model.ID, progress, domain.ModelStatusTraining, model.Rating, model.Reviews); err != nil {
			slog.ErrorContext(ctx, "updating training progress", "model", model.Name, logger.Err(err))
		}
	}
}
