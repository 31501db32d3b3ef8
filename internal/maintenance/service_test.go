package maintenance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ptorrado/predio/internal/apperr"
	"github.com/ptorrado/predio/internal/maintenance"
)

func TestService_Create_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := maintenance.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateRequest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *maintenance.Request) error {
			r.ID = uuid.New()
			r.CreatedAt = time.Now()
			return nil
		})

	svc := maintenance.NewService(repo)
	got, err := svc.Create(context.Background(), maintenance.CreateParams{
		ApartmentID: uuid.New(),
		Title:       "Leaking faucet",
		Description: "Kitchen faucet drips constantly",
	})
	require.NoError(t, err)

	assert.Equal(t, maintenance.PriorityMedium, got.Priority)
	assert.Equal(t, maintenance.StatusReported, got.Status)
	assert.WithinDuration(t, time.Now(), got.ReportedDate, time.Minute)
	assert.Zero(t, got.Cost)
}

func TestService_Create_Validation(t *testing.T) {
	aptID := uuid.New()

	type testCase struct {
		name   string
		params maintenance.CreateParams
	}

	tests := []testCase{
		{
			name:   "MissingApartment",
			params: maintenance.CreateParams{Title: "Broken lock", Description: "Front door"},
		},
		{
			name:   "MissingTitle",
			params: maintenance.CreateParams{ApartmentID: aptID, Description: "Front door"},
		},
		{
			name:   "MissingDescription",
			params: maintenance.CreateParams{ApartmentID: aptID, Title: "Broken lock"},
		},
		{
			name: "NegativeCost",
			params: maintenance.CreateParams{
				ApartmentID: aptID,
				Title:       "Broken lock",
				Description: "Front door",
				Cost:        -1,
			},
		},
		{
			name: "UnknownPriority",
			params: maintenance.CreateParams{
				ApartmentID: aptID,
				Title:       "Broken lock",
				Description: "Front door",
				Priority:    "critical",
			},
		},
		{
			name: "UnknownStatus",
			params: maintenance.CreateParams{
				ApartmentID: aptID,
				Title:       "Broken lock",
				Description: "Front door",
				Status:      "done",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := maintenance.NewMockRepository(ctrl)
			svc := maintenance.NewService(repo)

			got, err := svc.Create(context.Background(), tt.params)
			require.Error(t, err)

			var validation *apperr.ValidationError
			assert.True(t, errors.As(err, &validation), "want validation error, got %v", err)
			assert.Nil(t, got)
		})
	}
}

func TestService_Create_UnknownApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := maintenance.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateRequest(gomock.Any(), gomock.Any()).
		Return(apperr.NotFound("apartment"))

	svc := maintenance.NewService(repo)
	_, err := svc.Create(context.Background(), maintenance.CreateParams{
		ApartmentID: uuid.New(),
		Title:       "Broken lock",
		Description: "Front door",
	})

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestService_Update_InvalidPriority(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := maintenance.NewMockRepository(ctrl)
	svc := maintenance.NewService(repo)

	err := svc.Update(context.Background(), &maintenance.Request{
		ID:       uuid.New(),
		Priority: "critical",
		Status:   maintenance.StatusReported,
	})

	var validation *apperr.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestService_ListByApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aptID := uuid.New()
	filter := maintenance.ListFilter{ApartmentID: &aptID}

	repo := maintenance.NewMockRepository(ctrl)
	repo.EXPECT().
		ListRequests(gomock.Any(), filter).
		Return([]*maintenance.Request{{ID: uuid.New(), ApartmentID: aptID}}, nil)

	svc := maintenance.NewService(repo)
	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, aptID, got[0].ApartmentID)
}
