package booking_test

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
	"github.com/ptorrado/predio/internal/booking"
)

func TestService_Create(t *testing.T) {
	aptID := uuid.New()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    booking.CreateParams
		setupMock func(m *booking.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: booking.CreateParams{
				ApartmentID: aptID,
				TenantName:  "Ana Martins",
				StartDate:   start,
				MonthlyRent: 120000,
				Deposit:     120000,
			},
			setupMock: func(m *booking.MockRepository) {
				m.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *booking.Booking) error {
						b.ID = uuid.New()
						b.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "MissingApartment",
			params:  booking.CreateParams{TenantName: "Ana Martins", StartDate: start},
			wantErr: true,
		},
		{
			name:    "MissingTenantName",
			params:  booking.CreateParams{ApartmentID: aptID, StartDate: start},
			wantErr: true,
		},
		{
			name:    "MissingStartDate",
			params:  booking.CreateParams{ApartmentID: aptID, TenantName: "Ana Martins"},
			wantErr: true,
		},
		{
			name: "NegativeRent",
			params: booking.CreateParams{
				ApartmentID: aptID,
				TenantName:  "Ana Martins",
				StartDate:   start,
				MonthlyRent: -1,
			},
			wantErr: true,
		},
		{
			name: "UnknownStatus",
			params: booking.CreateParams{
				ApartmentID: aptID,
				TenantName:  "Ana Martins",
				StartDate:   start,
				Status:      "cancelled",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := booking.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := booking.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				require.Error(t, err)

				var validation *apperr.ValidationError
				assert.True(t, errors.As(err, &validation), "want validation error, got %v", err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, booking.StatusPending, got.Status)
		})
	}
}

func TestService_Create_UnknownApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := booking.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateBooking(gomock.Any(), gomock.Any()).
		Return(apperr.NotFound("apartment"))

	svc := booking.NewService(repo)
	_, err := svc.Create(context.Background(), booking.CreateParams{
		ApartmentID: uuid.New(),
		TenantName:  "Ana Martins",
		StartDate:   time.Now(),
	})

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestService_ListByApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aptID := uuid.New()
	filter := booking.ListFilter{ApartmentID: &aptID}

	repo := booking.NewMockRepository(ctrl)
	repo.EXPECT().
		ListBookings(gomock.Any(), filter).
		Return([]*booking.Booking{{ID: uuid.New(), ApartmentID: aptID}}, nil)

	svc := booking.NewService(repo)
	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, aptID, got[0].ApartmentID)
}

func TestService_Update_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := booking.NewMockRepository(ctrl)
	svc := booking.NewService(repo)

	err := svc.Update(context.Background(), &booking.Booking{
		ID:     uuid.New(),
		Status: "cancelled",
	})

	var validation *apperr.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := booking.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteBooking(gomock.Any(), gomock.Any()).
		Return(apperr.NotFound("booking"))

	svc := booking.NewService(repo)
	err := svc.Delete(context.Background(), uuid.New())

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
