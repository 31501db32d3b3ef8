package tenant_test

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
	"github.com/ptorrado/predio/internal/tenant"
)

func validCreateParams(apartmentID uuid.UUID) tenant.CreateParams {
	return tenant.CreateParams{
		ApartmentID: apartmentID,
		Name:        "Ana Martins",
		Email:       "ana@example.com",
		Phone:       "+351 910 000 000",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Create_FlipsApartmentToOccupied(t *testing.T) {
	for _, prior := range []apartment.Status{apartment.StatusAvailable, apartment.StatusMaintenance} {
		t.Run(string(prior), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tenant.NewMockRepository(ctrl)
			tx := tenant.NewMockOccupancyTx(ctrl)
			svc := tenant.NewService(repo)

			aptID := uuid.New()
			apt := &apartment.Apartment{ID: aptID, Number: "101", Status: prior}

			repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
			tx.EXPECT().GetApartment(gomock.Any(), aptID).Return(apt, nil)
			tx.EXPECT().
				CreateTenant(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, tn *tenant.Tenant) error {
					tn.ID = uuid.New()
					tn.CreatedAt = time.Now()
					return nil
				})
			tx.EXPECT().SetApartmentStatus(gomock.Any(), aptID, apartment.StatusOccupied).Return(nil)
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil)

			got, err := svc.Create(context.Background(), validCreateParams(aptID))
			require.NoError(t, err)
			assert.Equal(t, tenant.StatusPending, got.Status)
			require.NotNil(t, got.Apartment)
			assert.Equal(t, apartment.StatusOccupied, got.Apartment.Status)
		})
	}
}

func TestService_Create_OccupiedApartmentRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()
	apt := &apartment.Apartment{ID: aptID, Number: "101", Status: apartment.StatusOccupied}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApartment(gomock.Any(), aptID).Return(apt, nil)
	// No CreateTenant, no SetApartmentStatus, no Commit: the write must not
	// happen at all.
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.Create(context.Background(), validCreateParams(aptID))
	require.Error(t, err)
	assert.Nil(t, got)

	var conflict *apperr.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Contains(t, conflict.Msg, "101")
}

func TestService_Create_UnknownApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApartment(gomock.Any(), aptID).Return(nil, apperr.NotFound("apartment"))
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Create(context.Background(), validCreateParams(aptID))

	var notFound *apperr.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	svc := tenant.NewService(repo)

	tests := []struct {
		name   string
		mutate func(*tenant.CreateParams)
	}{
		{"MissingApartment", func(p *tenant.CreateParams) { p.ApartmentID = uuid.Nil }},
		{"MissingName", func(p *tenant.CreateParams) { p.Name = " " }},
		{"MissingEmail", func(p *tenant.CreateParams) { p.Email = "" }},
		{"MissingPhone", func(p *tenant.CreateParams) { p.Phone = "" }},
		{"MissingStartDate", func(p *tenant.CreateParams) { p.StartDate = time.Time{} }},
		{"BadStatus", func(p *tenant.CreateParams) { p.Status = "evicted" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validCreateParams(uuid.New())
			tt.mutate(&params)

			_, err := svc.Create(context.Background(), params)

			var invalid *apperr.ValidationError
			assert.True(t, errors.As(err, &invalid), "want validation error, got %v", err)
		})
	}
}

func TestService_Create_TenantWriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()
	apt := &apartment.Apartment{ID: aptID, Number: "101", Status: apartment.StatusAvailable}
	storeErr := errors.New("db down")

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApartment(gomock.Any(), aptID).Return(apt, nil)
	tx.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(storeErr)
	// The apartment flip must not be attempted after a failed tenant write.
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Create(context.Background(), validCreateParams(aptID))
	assert.ErrorIs(t, err, storeErr)
}

func TestService_Create_StatusFlipFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()
	apt := &apartment.Apartment{ID: aptID, Number: "101", Status: apartment.StatusAvailable}
	storeErr := errors.New("db down")

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetApartment(gomock.Any(), aptID).Return(apt, nil)
	tx.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().SetApartmentStatus(gomock.Any(), aptID, apartment.StatusOccupied).Return(storeErr)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Create(context.Background(), validCreateParams(aptID))
	assert.ErrorIs(t, err, storeErr)
}

func TestService_Update_EndedFreesApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()
	tenantID := uuid.New()
	existing := &tenant.Tenant{
		ID:          tenantID,
		ApartmentID: aptID,
		Name:        "Ana Martins",
		Status:      tenant.StatusActive,
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetTenant(gomock.Any(), tenantID).Return(existing, nil)
	tx.EXPECT().UpdateTenant(gomock.Any(), existing).Return(nil)
	tx.EXPECT().SetApartmentStatus(gomock.Any(), aptID, apartment.StatusAvailable).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	ended := tenant.StatusEnded
	got, err := svc.Update(context.Background(), tenantID, tenant.UpdateParams{Status: &ended})
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusEnded, got.Status)
}

func TestService_Update_NonEndedLeavesApartmentAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	tenantID := uuid.New()
	existing := &tenant.Tenant{
		ID:          tenantID,
		ApartmentID: uuid.New(),
		Name:        "Ana Martins",
		Status:      tenant.StatusPending,
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetTenant(gomock.Any(), tenantID).Return(existing, nil)
	tx.EXPECT().UpdateTenant(gomock.Any(), existing).Return(nil)
	// Transitioning into active never touches the apartment.
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	active := tenant.StatusActive
	got, err := svc.Update(context.Background(), tenantID, tenant.UpdateParams{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusActive, got.Status)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	tenantID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetTenant(gomock.Any(), tenantID).Return(nil, apperr.NotFound("tenant"))
	tx.EXPECT().Rollback().Return(nil)

	name := "Rui"
	_, err := svc.Update(context.Background(), tenantID, tenant.UpdateParams{Name: &name})

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestService_Delete_FreesApartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	aptID := uuid.New()
	tenantID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DeleteTenant(gomock.Any(), tenantID).Return(aptID, nil)
	tx.EXPECT().SetApartmentStatus(gomock.Any(), aptID, apartment.StatusAvailable).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	require.NoError(t, svc.Delete(context.Background(), tenantID))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := tenant.NewMockRepository(ctrl)
	tx := tenant.NewMockOccupancyTx(ctrl)
	svc := tenant.NewService(repo)

	tenantID := uuid.New()

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DeleteTenant(gomock.Any(), tenantID).Return(uuid.Nil, apperr.NotFound("tenant"))
	tx.EXPECT().Rollback().Return(nil)

	err := svc.Delete(context.Background(), tenantID)

	var notFound *apperr.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
