package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/estatekit/messenger/internal/engine"
	mocks "github.com/estatekit/messenger/internal/mocks/service/messaging"
	"github.com/estatekit/messenger/internal/model"
	jobrepo "github.com/estatekit/messenger/internal/repository/job"
)

func residenceFixtures() []model.Residence {
	return []model.Residence{
		{
			ID:          uuid.New(),
			HouseNumber: "A1",
			Name:        "Mensah Family",
			Phones: []model.PhoneNumber{
				{Number: "+233200000001", Label: "Home"},
				{Number: "+233501234567", Label: "Mobile", IsPrimary: true},
			},
			Emails: []model.EmailAddress{
				{Email: "mensah@example.com", Label: "Personal", IsPrimary: true},
			},
		},
		{
			ID:          uuid.New(),
			HouseNumber: "B2",
			Name:        "Owusu Family",
			Emails: []model.EmailAddress{
				{Email: "owusu@example.com", Label: "Work"},
			},
		},
	}
}

func TestService_CreateJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	recipientMock := mocks.NewMockrecipientRepository(ctrl)
	residenceMock := mocks.NewMockresidenceRepository(ctrl)
	engineMock := mocks.NewMockjobEngine(ctrl)

	svc := NewService(repoMock, recipientMock, residenceMock, engineMock, nil)

	residences := residenceFixtures()
	jobID := uuid.New()
	strategy := retry.Strategy{}

	input := CreateJobInput{
		Subject: "Water maintenance",
		Body:    "Water will be shut off on Friday.",
		SMSBody: "Water off Friday.",
	}
	wantJob := model.MessageJob{
		Subject:  input.Subject,
		Body:     input.Body,
		SMSBody:  input.SMSBody,
		Channels: []model.Channel{model.ChannelEmail, model.ChannelSMS},
		Status:   model.JobStatusPending,
	}
	emailRecs := []model.Recipient{
		{ResidenceID: residences[0].ID, Address: "mensah@example.com"},
		{ResidenceID: residences[1].ID, Address: "owusu@example.com"},
	}
	smsRecs := []model.Recipient{
		{ResidenceID: residences[0].ID, Address: "+233501234567"},
	}

	residenceMock.EXPECT().GetAllResidences(gomock.Any()).Return(residences, nil)
	repoMock.EXPECT().CreateJob(gomock.Any(), wantJob).Return(jobID, nil)
	recipientMock.EXPECT().BulkCreate(gomock.Any(), model.ChannelEmail, jobID, emailRecs).Return(nil)
	recipientMock.EXPECT().BulkCreate(gomock.Any(), model.ChannelSMS, jobID, smsRecs).Return(nil)
	repoMock.EXPECT().SetTotals(gomock.Any(), jobID, 2, 1).Return(nil)
	engineMock.EXPECT().Start(gomock.Any(), jobID, strategy).Return(nil)

	stored := wantJob
	stored.ID = jobID
	stored.EmailTotalRecipients = 2
	stored.SMSTotalRecipients = 1
	stored.TotalRecipients = 2
	repoMock.EXPECT().GetJobByID(gomock.Any(), jobID).Return(stored, nil)

	created, err := svc.CreateJob(context.Background(), strategy, input)
	assert.NoError(t, err)
	assert.Equal(t, stored, created)
}

func TestService_CreateJob_ScheduleFailureStillCreates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	recipientMock := mocks.NewMockrecipientRepository(ctrl)
	residenceMock := mocks.NewMockresidenceRepository(ctrl)
	engineMock := mocks.NewMockjobEngine(ctrl)

	svc := NewService(repoMock, recipientMock, residenceMock, engineMock, nil)

	residences := residenceFixtures()
	jobID := uuid.New()
	strategy := retry.Strategy{}

	residenceMock.EXPECT().GetAllResidences(gomock.Any()).Return(residences, nil)
	repoMock.EXPECT().CreateJob(gomock.Any(), gomock.Any()).Return(jobID, nil)
	recipientMock.EXPECT().BulkCreate(gomock.Any(), model.ChannelEmail, jobID, gomock.Any()).Return(nil)
	recipientMock.EXPECT().BulkCreate(gomock.Any(), model.ChannelSMS, jobID, gomock.Any()).Return(nil)
	repoMock.EXPECT().SetTotals(gomock.Any(), jobID, 2, 1).Return(nil)
	engineMock.EXPECT().Start(gomock.Any(), jobID, strategy).Return(errors.New("broker unavailable"))

	stored := model.MessageJob{ID: jobID, Status: model.JobStatusPending}
	repoMock.EXPECT().GetJobByID(gomock.Any(), jobID).Return(stored, nil)

	created, err := svc.CreateJob(context.Background(), strategy, CreateJobInput{
		Subject: "Dues reminder",
		Body:    "Dues are due.",
	})
	assert.NoError(t, err)
	assert.Equal(t, stored, created)
}

func TestService_CreateJob_UnknownChannel(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	_, err := svc.CreateJob(context.Background(), retry.Strategy{}, CreateJobInput{
		Body:     "Hello",
		Channels: []model.Channel{"telegram"},
	})
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestService_CreateJob_SubjectRequired(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	_, err := svc.CreateJob(context.Background(), retry.Strategy{}, CreateJobInput{
		Subject:  "   ",
		Body:     "Hello",
		Channels: []model.Channel{model.ChannelEmail},
	})
	assert.ErrorIs(t, err, ErrSubjectRequired)
}

func TestService_CreateJob_NoRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	residenceMock := mocks.NewMockresidenceRepository(ctrl)
	svc := NewService(nil, nil, residenceMock, nil, nil)

	// Residence has an email but the job is SMS-only.
	residenceMock.EXPECT().GetAllResidences(gomock.Any()).Return([]model.Residence{
		{
			ID:     uuid.New(),
			Name:   "Mensah Family",
			Emails: []model.EmailAddress{{Email: "mensah@example.com"}},
		},
	}, nil)

	_, err := svc.CreateJob(context.Background(), retry.Strategy{}, CreateJobInput{
		Body:     "Hello",
		Channels: []model.Channel{model.ChannelSMS},
	})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestService_Status_CacheHitTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheMock := mocks.NewMockcache(ctrl)
	svc := NewService(nil, nil, nil, nil, cacheMock)

	id := uuid.New()
	strategy := retry.Strategy{}

	want := JobStatus{
		ID:                     id,
		Status:                 model.JobStatusCompleted,
		Channels:               []model.Channel{model.ChannelEmail},
		EmailTotalRecipients:   3,
		EmailSentCount:         3,
		EmailProgressPercent:   100,
		OverallProgressPercent: 100,
		TotalRecipients:        3,
		SentCount:              3,
		ProgressPercent:        100,
	}
	payload, err := json.Marshal(want)
	assert.NoError(t, err)

	cacheMock.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return(string(payload), nil)

	got, err := svc.Status(context.Background(), strategy, id)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_Status_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)
	svc := NewService(repoMock, nil, nil, nil, cacheMock)

	id := uuid.New()
	strategy := retry.Strategy{}

	job := model.MessageJob{
		ID:                   id,
		Status:               model.JobStatusCompleted,
		Channels:             model.Channels(),
		EmailTotalRecipients: 2,
		EmailSentCount:       1,
		EmailFailedCount:     1,
		SMSTotalRecipients:   1,
		SMSSentCount:         1,
		TotalRecipients:      2,
		SentCount:            1,
		FailedCount:          1,
	}
	want := statusOf(job)
	payload, err := json.Marshal(want)
	assert.NoError(t, err)

	cacheMock.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)
	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(job, nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(payload)).Return(nil)

	got, err := svc.Status(context.Background(), strategy, id)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 100, got.OverallProgressPercent)
}

func TestService_Status_InFlightSkipsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)
	svc := NewService(repoMock, nil, nil, nil, cacheMock)

	id := uuid.New()
	strategy := retry.Strategy{}

	job := model.MessageJob{
		ID:                   id,
		Status:               model.JobStatusProcessing,
		Channels:             []model.Channel{model.ChannelEmail},
		EmailTotalRecipients: 4,
		EmailSentCount:       1,
		EmailFailedCount:     1,
		TotalRecipients:      4,
		SentCount:            1,
		FailedCount:          1,
	}

	// No SetWithRetry expectation: in-flight snapshots are never cached.
	cacheMock.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return("", redis.Nil)
	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(job, nil)

	got, err := svc.Status(context.Background(), strategy, id)
	assert.NoError(t, err)
	assert.Equal(t, model.JobStatusProcessing, got.Status)
	assert.Equal(t, 50, got.EmailProgressPercent)
}

func TestService_Status_StaleCacheFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)
	svc := NewService(repoMock, nil, nil, nil, cacheMock)

	id := uuid.New()
	strategy := retry.Strategy{}

	// A non-terminal snapshot left over from a retry must not be served.
	stale := JobStatus{ID: id, Status: model.JobStatusProcessing, EmailSentCount: 1}
	payload, err := json.Marshal(stale)
	assert.NoError(t, err)

	job := model.MessageJob{
		ID:                   id,
		Status:               model.JobStatusProcessing,
		Channels:             []model.Channel{model.ChannelEmail},
		EmailTotalRecipients: 4,
		EmailSentCount:       3,
		TotalRecipients:      4,
		SentCount:            3,
	}

	cacheMock.EXPECT().GetWithRetry(gomock.Any(), strategy, id.String()).Return(string(payload), nil)
	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(job, nil)

	got, err := svc.Status(context.Background(), strategy, id)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.EmailSentCount)
}

func TestService_Recipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	recipientMock := mocks.NewMockrecipientRepository(ctrl)
	svc := NewService(repoMock, recipientMock, nil, nil, nil)

	id := uuid.New()
	results := make([]model.Recipient, recipientsPageSize)
	for i := range results {
		results[i] = model.Recipient{ID: uuid.New(), JobID: id, Status: model.RecipientStatusSent}
	}

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(model.MessageJob{ID: id}, nil)
	recipientMock.EXPECT().CountByJobID(gomock.Any(), model.ChannelEmail, id).Return(25, nil)
	recipientMock.EXPECT().GetByJobID(gomock.Any(), model.ChannelEmail, id, recipientsPageSize, 10).Return(results, nil)

	page, err := svc.Recipients(context.Background(), model.ChannelEmail, id, 2)
	assert.NoError(t, err)
	assert.Equal(t, 25, page.Count)
	assert.True(t, page.Next)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Results, recipientsPageSize)
}

func TestService_Recipients_DefaultsToFirstPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	recipientMock := mocks.NewMockrecipientRepository(ctrl)
	svc := NewService(repoMock, recipientMock, nil, nil, nil)

	id := uuid.New()
	results := []model.Recipient{
		{ID: uuid.New(), JobID: id, Status: model.RecipientStatusPending},
	}

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(model.MessageJob{ID: id}, nil)
	recipientMock.EXPECT().CountByJobID(gomock.Any(), model.ChannelSMS, id).Return(1, nil)
	recipientMock.EXPECT().GetByJobID(gomock.Any(), model.ChannelSMS, id, recipientsPageSize, 0).Return(results, nil)

	page, err := svc.Recipients(context.Background(), model.ChannelSMS, id, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.False(t, page.Next)
	assert.Equal(t, results, page.Results)
}

func TestService_Recipients_UnknownChannel(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	_, err := svc.Recipients(context.Background(), "push", uuid.New(), 1)
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestService_Retry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	engineMock := mocks.NewMockjobEngine(ctrl)
	cacheMock := mocks.NewMockcache(ctrl)
	svc := NewService(repoMock, nil, nil, engineMock, cacheMock)

	id := uuid.New()
	strategy := retry.Strategy{}

	before := model.MessageJob{
		ID:                   id,
		Status:               model.JobStatusFailed,
		Channels:             []model.Channel{model.ChannelEmail},
		EmailTotalRecipients: 2,
		EmailSentCount:       1,
		EmailFailedCount:     1,
		TotalRecipients:      2,
		SentCount:            1,
		FailedCount:          1,
	}
	after := before
	after.Status = model.JobStatusProcessing
	after.EmailFailedCount = 0
	after.FailedCount = 0

	want := statusOf(after)
	payload, err := json.Marshal(want)
	assert.NoError(t, err)

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(before, nil)
	engineMock.EXPECT().Retry(gomock.Any(), id, strategy).Return(nil)
	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(after, nil)
	cacheMock.EXPECT().SetWithRetry(gomock.Any(), strategy, id.String(), string(payload)).Return(nil)

	got, err := svc.Retry(context.Background(), strategy, id)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, model.JobStatusProcessing, got.Status)
	assert.Zero(t, got.EmailFailedCount)
}

func TestService_Retry_NoFailedRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	engineMock := mocks.NewMockjobEngine(ctrl)
	svc := NewService(repoMock, nil, nil, engineMock, nil)

	id := uuid.New()
	strategy := retry.Strategy{}

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(model.MessageJob{ID: id, Status: model.JobStatusCompleted}, nil)
	engineMock.EXPECT().Retry(gomock.Any(), id, strategy).Return(engine.ErrNoFailedRecipients)

	_, err := svc.Retry(context.Background(), strategy, id)
	assert.ErrorIs(t, err, engine.ErrNoFailedRecipients)
}

func TestService_Retry_JobNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	svc := NewService(repoMock, nil, nil, nil, nil)

	id := uuid.New()

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(model.MessageJob{}, jobrepo.ErrJobNotFound)

	_, err := svc.Retry(context.Background(), retry.Strategy{}, id)
	assert.ErrorIs(t, err, jobrepo.ErrJobNotFound)
}

func TestService_Resume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	engineMock := mocks.NewMockjobEngine(ctrl)
	svc := NewService(repoMock, nil, nil, engineMock, nil)

	id := uuid.New()
	strategy := retry.Strategy{}

	repoMock.EXPECT().GetJobByID(gomock.Any(), id).Return(model.MessageJob{ID: id, Status: model.JobStatusPending}, nil)
	engineMock.EXPECT().Start(gomock.Any(), id, strategy).Return(nil)

	err := svc.Resume(context.Background(), strategy, id)
	assert.NoError(t, err)
}

func TestService_Jobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repoMock := mocks.NewMockjobRepository(ctrl)
	svc := NewService(repoMock, nil, nil, nil, nil)

	jobs := []model.MessageJob{
		{ID: uuid.New(), Subject: "Water maintenance"},
		{ID: uuid.New(), Subject: "Dues reminder"},
	}

	repoMock.EXPECT().GetAllJobs(gomock.Any()).Return(jobs, nil)

	result, err := svc.Jobs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, jobs, result)
}
