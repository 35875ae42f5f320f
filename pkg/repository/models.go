package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalev/modelmart/pkg/domain"
)

type modelRepository struct {
	db *sql.DB
}

func NewModelRepository(db *sql.DB) *modelRepository {
	return &modelRepository{db: db}
}

func (m *modelRepository) Create(ctx context.Context, model domain.Model) (domain.Model, error) {
	const query = `
		INSERT INTO models (name, description, category, status, training_progress, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := m.db.QueryRowContext(ctx, query,
		model.Name, model.Description, model.Category, model.Status, model.TrainingProgress, model.Price, model.ImageURL).
		Scan(&model.ID, &model.CreatedAt)
	if err != nil {
		return domain.Model{}, fmt.Errorf("inserting model: %w", err)
	}

	return model, nil
}

func (m *modelRepository) GetByID(ctx context.Context, id int64) (*domain.Model, error) {
	const query = `
		SELECT id, name, description, category, status, training_progress, rating, reviews, price, image_url, created_at
		FROM models
		WHERE id = $1
	`

	var model domain.Model
	err := m.db.QueryRowContext(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Description, &model.Category, &model.Status,
		&model.TrainingProgress, &model.Rating, &model.Reviews, &model.Price, &model.ImageURL, &model.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching model by id: %w", err)
	}

	return &model, nil
}

func (m *modelRepository) List(ctx context.Context) ([]domain.Model, error) {
	const query = `
		SELECT id, name, description, category, status, training_progress, rating, reviews, price, image_url, created_at
		FROM models
		ORDER BY created_at DESC
	`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer rows.Close()

	var models []domain.Model
	for rows.Next() {
		var model domain.Model
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Category, &model.Status,
			&model.TrainingProgress, &model.Rating, &model.Reviews, &model.Price, &model.ImageURL, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning model row: %w", err)
		}
		models = append(models, model)
	}

	return models, rows.Err()
}

// ListTraining returns models still in the training state, for the simulator.
func (m *modelRepository) ListTraining(ctx context.Context) ([]domain.Model, error) {
	const query = `
		SELECT id, name, description, category, status, training_progress, rating, reviews, price, image_url, created_at
		FROM models
		WHERE status = $1
	`

	rows, err := m.db.QueryContext(ctx, query, domain.ModelStatusTraining)
	if err != nil {
		return nil, fmt.Errorf("listing training models: %w", err)
	}
	defer rows.Close()

	var models []domain.Model
	for rows.Next() {
		var model domain.Model
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Category, &model.Status,
			&model.TrainingProgress, &model.Rating, &model.Reviews, &model.Price, &model.ImageURL, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning model row: %w", err)
		}
		models = append(models, model)
	}

	return models, rows.Err()
}

func (m *modelRepository) UpdateTraining(ctx context.Context, id int64, progress int, status domain.ModelStatus, rating float64, reviews int) error {
	const query = `
		UPDATE models
		SET training_progress = $2, status = $3, rating = $4, reviews = $5
		WHERE id = $1
	`

	if _, err := m.db.ExecContext(ctx, query, id, progress, status, rating, reviews); err != nil {
		return fmt.Errorf("updating training state: %w", err)
	}
	return nil
}

func (m *modelRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM models WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting model: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
