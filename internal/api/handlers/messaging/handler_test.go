package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/estatekit/messenger/internal/api/dto"
	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/internal/engine"
	mocks "github.com/estatekit/messenger/internal/mocks/api/handlers/messaging"
	"github.com/estatekit/messenger/internal/model"
	"github.com/estatekit/messenger/internal/repository/job"
	"github.com/estatekit/messenger/internal/service/messaging"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MockmessagingService, *config.Config) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockmessagingService(ctrl)
	cfg := &config.Config{Retry: retry.Strategy{}}
	validate := validator.New()
	handler := NewHandler(mockService, validate, cfg)
	return handler, mockService, cfg
}

func TestHandler_Create_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)

	reqBody := dto.CreateJobRequest{
		Subject:  "Water maintenance",
		Body:     "Water will be shut off on Friday.",
		SMSBody:  "Water off Friday.",
		Channels: []string{"email", "sms"},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/messaging", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	input := messaging.CreateJobInput{
		Subject:  reqBody.Subject,
		Body:     reqBody.Body,
		SMSBody:  reqBody.SMSBody,
		Channels: []model.Channel{model.ChannelEmail, model.ChannelSMS},
	}

	mockService.EXPECT().
		CreateJob(gomock.Any(), cfg.Retry, input).
		Return(model.MessageJob{ID: uuid.New(), Status: model.JobStatusPending}, nil)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	handler, _, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/messaging", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Create_MissingBody(t *testing.T) {
	handler, _, _ := setupHandler(t)

	bodyBytes, _ := json.Marshal(dto.CreateJobRequest{Subject: "No body"})
	req := httptest.NewRequest(http.MethodPost, "/api/messaging", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Create_UnknownChannel(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)

	reqBody := dto.CreateJobRequest{
		Body:     "Hello",
		Channels: []string{"telegram"},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/messaging", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		CreateJob(gomock.Any(), cfg.Retry, gomock.Any()).
		Return(model.MessageJob{}, fmt.Errorf("%w: telegram", messaging.ErrUnknownChannel))

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Get_Success(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String(), nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Job(gomock.Any(), id).
		Return(model.MessageJob{ID: id, Status: model.JobStatusCompleted}, nil)

	handler.Get(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetAll_Success(t *testing.T) {
	handler, mockService, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/messaging", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		Jobs(gomock.Any()).
		Return([]model.MessageJob{{ID: uuid.New(), Subject: "Dues reminder"}}, nil)

	handler.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetStatus_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String()+"/status", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Status(gomock.Any(), cfg.Retry, id).
		Return(messaging.JobStatus{ID: id, Status: model.JobStatusProcessing}, nil)

	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetStatus_NotFound(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String()+"/status", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Status(gomock.Any(), cfg.Retry, id).
		Return(messaging.JobStatus{}, fmt.Errorf("get job: %w", job.ErrJobNotFound))

	handler.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestHandler_GetStatus_InvalidID(t *testing.T) {
	handler, _, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/not-a-uuid/status", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	handler.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_EmailRecipients_Success(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String()+"/email-recipients?page=2", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Recipients(gomock.Any(), model.ChannelEmail, id, 2).
		Return(messaging.RecipientPage{Count: 25, Next: true, Page: 2}, nil)

	handler.EmailRecipients(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_EmailRecipients_BadPageDefaultsToFirst(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String()+"/email-recipients?page=abc", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Recipients(gomock.Any(), model.ChannelEmail, id, 1).
		Return(messaging.RecipientPage{Count: 3, Page: 1}, nil)

	handler.EmailRecipients(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_SMSRecipients_Success(t *testing.T) {
	handler, mockService, _ := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/messaging/"+id.String()+"/sms-recipients", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Recipients(gomock.Any(), model.ChannelSMS, id, 1).
		Return(messaging.RecipientPage{Count: 1, Page: 1}, nil)

	handler.SMSRecipients(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Retry_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/messaging/"+id.String()+"/retry", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Retry(gomock.Any(), cfg.Retry, id).
		Return(messaging.JobStatus{ID: id, Status: model.JobStatusProcessing}, nil)

	handler.Retry(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_Retry_NothingToRetry(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/messaging/"+id.String()+"/retry", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Retry(gomock.Any(), cfg.Retry, id).
		Return(messaging.JobStatus{}, fmt.Errorf("retry job: %w", engine.ErrNoFailedRecipients))

	handler.Retry(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Resume_Success(t *testing.T) {
	handler, mockService, cfg := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/messaging/"+id.String()+"/resume", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		Resume(gomock.Any(), cfg.Retry, id).
		Return(nil)

	handler.Resume(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
