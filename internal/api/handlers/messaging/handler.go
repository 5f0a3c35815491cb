package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/api/dto"
	"github.com/estatekit/messenger/internal/api/respond"
	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/internal/engine"
	"github.com/estatekit/messenger/internal/model"
	"github.com/estatekit/messenger/internal/repository/job"
	"github.com/estatekit/messenger/internal/service/messaging"
)

// messagingService defines the job operations the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/messaging/mock.go -package=mocks
type messagingService interface {
	CreateJob(context.Context, retry.Strategy, messaging.CreateJobInput) (model.MessageJob, error)
	Status(context.Context, retry.Strategy, uuid.UUID) (messaging.JobStatus, error)
	Recipients(ctx context.Context, ch model.Channel, id uuid.UUID, page int) (messaging.RecipientPage, error)
	Retry(context.Context, retry.Strategy, uuid.UUID) (messaging.JobStatus, error)
	Resume(context.Context, retry.Strategy, uuid.UUID) error
	Job(context.Context, uuid.UUID) (model.MessageJob, error)
	Jobs(context.Context) ([]model.MessageJob, error)
}

// Handler handles HTTP requests for messaging jobs.
type Handler struct {
	service   messagingService
	validator *validator.Validate
	cfg       *config.Config
}

func NewHandler(
	s messagingService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Create opens a new messaging job and schedules its first run.
func (h *Handler) Create(c *ginext.Context) {
	var req dto.CreateJobRequest

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

	channels := make([]model.Channel, 0, len(req.Channels))
	for _, ch := range req.Channels {
		channels = append(channels, model.Channel(ch))
	}

	input := messaging.CreateJobInput{
		Subject:  req.Subject,
		Body:     req.Body,
		SMSBody:  req.SMSBody,
		Channels: channels,
	}

	created, err := h.service.CreateJob(c.Request.Context(), h.cfg.Retry, input)
	if err != nil {
		if errors.Is(err, messaging.ErrUnknownChannel) ||
			errors.Is(err, messaging.ErrSubjectRequired) ||
			errors.Is(err, messaging.ErrNoRecipients) {
			zlog.Logger.Warn().Err(err).Msg("rejected job create request")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("subject", req.Subject).Msg("failed to create job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, created)
}

// GetAll lists every messaging job, newest first.
func (h *Handler) GetAll(c *ginext.Context) {
	jobs, err := h.service.Jobs(c.Request.Context())
	if err != nil {
		if errors.Is(err, job.ErrNoJobsFound) {
			zlog.Logger.Warn().Err(err).Msg("no jobs found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("no jobs found"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to get jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, jobs)
}

// Get returns one messaging job by ID.
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

	j, err := h.service.Job(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, j)
}

// GetStatus returns the polling snapshot for one job: per-channel counters
// and computed progress percentages.
func (h *Handler) GetStatus(c *ginext.Context) {
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

	status, err := h.service.Status(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get job status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// EmailRecipients returns one page of the job's email recipient snapshot.
func (h *Handler) EmailRecipients(c *ginext.Context) {
	h.recipients(c, model.ChannelEmail)
}

// SMSRecipients returns one page of the job's SMS recipient snapshot.
func (h *Handler) SMSRecipients(c *ginext.Context) {
	h.recipients(c, model.ChannelSMS)
}

func (h *Handler) recipients(c *ginext.Context, ch model.Channel) {
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

	// Anything unparseable falls back to the first page.
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.Recipients(c.Request.Context(), ch, id, page)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Str("channel", string(ch)).Msg("failed to list recipients")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, result)
}

// Retry resets the job's failed recipients and schedules another run.
func (h *Handler) Retry(c *ginext.Context) {
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

	status, err := h.service.Retry(c.Request.Context(), h.cfg.Retry, id)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		if errors.Is(err, engine.ErrNoFailedRecipients) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("nothing to retry")
			respond.Fail(c.Writer, http.StatusBadRequest, engine.ErrNoFailedRecipients)
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to retry job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, status)
}

// Resume re-publishes the run message for a job, picking up from where the
// recipient ledger left off.
func (h *Handler) Resume(c *ginext.Context) {
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

	if err := h.service.Resume(c.Request.Context(), h.cfg.Retry, id); err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("job not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to resume job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, "job run scheduled")
}
