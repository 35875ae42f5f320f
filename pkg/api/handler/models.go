package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/dkovalev/modelmart/pkg/api/response"
	"github.com/dkovalev/modelmart/pkg/domain"
)

type ModelRepository interface {
	Create(ctx context.Context, model domain.Model) (domain.Model, error)
	GetByID(ctx context.Context, id int64) (*domain.Model, error)
	List(ctx context.Context) ([]domain.Model, error)
	Delete(ctx context.Context, id int64) error
}

type models struct {
	repo   ModelRepository
	writer response.JSONResponseWriter
}

func NewModels(repo ModelRepository) *models {
	return &models{repo: repo}
}

type createModelRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

func (m *models) Create(w http.ResponseWriter, r *http.Request) {
	var req createModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	category := domain.Category(req.Category)
	if !lo.Contains(domain.CreatableCategories, category) {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, domain.ErrInvalidCategory.Error())
		return
	}

	model, err := m.repo.Create(r.Context(), domain.Model{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Status:      domain.ModelStatusTraining,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.writer.WriteCreatedResponse(w, model)
}

func (m *models) List(w http.ResponseWriter, r *http.Request) {
	list, err := m.repo.List(r.Context())
	if err != nil {
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.writer.WriteSuccessResponse(w, list)
}

func (m *models) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "id parameter is missing or invalid")
		return
	}

	model, err := m.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.writer.WriteErrorResponse(w, http.StatusNotFound, "model not found")
			return
		}
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.writer.WriteSuccessResponse(w, model)
}

func (m *models) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "id parameter is missing or invalid")
		return
	}

	if err := m.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.writer.WriteErrorResponse(w, http.StatusNotFound, "model not found")
			return
		}
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.writer.WriteSuccessResponse(w, map[string]string{"status": "deleted"})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
