package apartment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ptorrado/predio/internal/apartment"
	"github.com/ptorrado/predio/internal/apperr"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    apartment.CreateParams
		setupMock func(m *apartment.MockRepository)
		wantKind  string
	}

	tests := []testCase{
		{
			name: "Success",
			params: apartment.CreateParams{
				Number:    "101",
				Floor:     1,
				Bedrooms:  1,
				Bathrooms: 1,
				Rent:      100000,
			},
			setupMock: func(m *apartment.MockRepository) {
				m.EXPECT().
					CreateApartment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *apartment.Apartment) error {
						a.ID = uuid.New()
						a.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:     "MissingNumber",
			params:   apartment.CreateParams{Floor: 1, Rent: 100000},
			wantKind: "validation",
		},
		{
			name:     "NegativeRent",
			params:   apartment.CreateParams{Number: "101", Rent: -1},
			wantKind: "validation",
		},
		{
			name:     "UnknownStatus",
			params:   apartment.CreateParams{Number: "101", Status: "vacant"},
			wantKind: "validation",
		},
		{
			name:   "DuplicateNumber",
			params: apartment.CreateParams{Number: "101", Rent: 100000},
			setupMock: func(m *apartment.MockRepository) {
				m.EXPECT().
					CreateApartment(gomock.Any(), gomock.Any()).
					Return(apperr.Conflictf("apartment 101 already exists"))
			},
			wantKind: "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := apartment.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := apartment.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantKind != "" {
				require.Error(t, err)
				assertKind(t, err, tt.wantKind)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, apartment.StatusAvailable, got.Status)
		})
	}
}

func assertKind(t *testing.T, err error, kind string) {
	t.Helper()

	switch kind {
	case "validation":
		var e *apperr.ValidationError
		assert.True(t, errors.As(err, &e), "want validation error, got %v", err)
	case "conflict":
		var e *apperr.ConflictError
		assert.True(t, errors.As(err, &e), "want conflict error, got %v", err)
	case "notfound":
		var e *apperr.NotFoundError
		assert.True(t, errors.As(err, &e), "want not-found error, got %v", err)
	}
}

func TestService_Create_ExplicitStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := apartment.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateApartment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *apartment.Apartment) error {
			a.ID = uuid.New()
			return nil
		})

	svc := apartment.NewService(repo)
	got, err := svc.Create(context.Background(), apartment.CreateParams{
		Number: "302",
		Status: apartment.StatusMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, apartment.StatusMaintenance, got.Status)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := apartment.NewMockRepository(ctrl)
	svc := apartment.NewService(repo)

	a := &apartment.Apartment{
		ID:     uuid.New(),
		Number: "101",
		Rent:   100000,
		Status: apartment.StatusAvailable,
	}

	repo.EXPECT().UpdateApartment(gomock.Any(), a).Return(nil)
	require.NoError(t, svc.Update(context.Background(), a))

	conflict := apperr.Conflictf("apartment 102 already exists")
	a.Number = "102"
	repo.EXPECT().UpdateApartment(gomock.Any(), a).Return(conflict)

	err := svc.Update(context.Background(), a)
	assert.ErrorIs(t, err, conflict)
}

func TestService_List_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := apartment.NewMockRepository(ctrl)
	repo.EXPECT().ListApartments(gomock.Any()).Return([]*apartment.Apartment{}, nil)

	svc := apartment.NewService(repo)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := apartment.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteApartment(gomock.Any(), gomock.Any()).
		Return(apperr.NotFound("apartment"))

	svc := apartment.NewService(repo)
	err := svc.Delete(context.Background(), uuid.New())

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
