package residence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/api/dto"
	"github.com/estatekit/messenger/internal/api/respond"
	"github.com/estatekit/messenger/internal/model"
	"github.com/estatekit/messenger/internal/repository/residence"
)

// residenceRepository defines the storage operations the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/residence/mock.go -package=mocks
type residenceRepository interface {
	CreateResidence(context.Context, model.Residence) (uuid.UUID, error)
	GetResidenceByID(context.Context, uuid.UUID) (model.Residence, error)
	GetAllResidences(context.Context) ([]model.Residence, error)
	UpdateResidence(context.Context, model.Residence) error
	DeleteResidence(context.Context, uuid.UUID) error
}

// Handler handles HTTP requests for the residence contact directory.
type Handler struct {
	repo      residenceRepository
	validator *validator.Validate
}

func NewHandler(r residenceRepository, v *validator.Validate) *Handler {
	return &Handler{repo: r, validator: v}
}

func toModel(req dto.SaveResidenceRequest) model.Residence {
	res := model.Residence{
		HouseNumber: req.HouseNumber,
		Name:        req.Name,
	}
	for _, p := range req.Phones {
		res.Phones = append(res.Phones, model.PhoneNumber{
			Number:    p.Number,
			Label:     p.Label,
			IsPrimary: p.IsPrimary,
		})
	}
	for _, e := range req.Emails {
		res.Emails = append(res.Emails, model.EmailAddress{
			Email:     e.Email,
			Label:     e.Label,
			IsPrimary: e.IsPrimary,
		})
	}
	return res
}

// Create adds a residence together with its contact lists.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.SaveResidenceRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	id, err := h.repo.CreateResidence(c.Request.Context(), toModel(req))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("house_number", req.HouseNumber).Msg("failed to create residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	created, err := h.repo.GetResidenceByID(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to load created residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// GetAll lists every residence with its contacts, ordered by house number.
func (h *Handler) GetAll(c *ginext.Context) {
	residences, err := h.repo.GetAllResidences(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to get residences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, residences)
}

// Get returns one residence by ID.
func (h *Handler) Get(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	res, err := h.repo.GetResidenceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, residence.ErrResidenceNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("residence not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("residence not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, res)
}

// Update replaces a residence's fields and contact lists.
func (h *Handler) Update(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	var req dto.SaveResidenceRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	res := toModel(req)
	res.ID = id

	if err := h.repo.UpdateResidence(c.Request.Context(), res); err != nil {
		if errors.Is(err, residence.ErrResidenceNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("residence not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("residence not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to update residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	updated, err := h.repo.GetResidenceByID(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to load updated residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, updated)
}

// Delete removes a residence; its contacts go with it.
func (h *Handler) Delete(c *ginext.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return
	}

	if err := h.repo.DeleteResidence(c.Request.Context(), id); err != nil {
		if errors.Is(err, residence.ErrResidenceNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("residence not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("residence not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete residence")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "residence deleted")
}
