package payment_test

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
	"github.com/ptorrado/predio/internal/payment"
)

func TestService_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	valid := payment.CreateParams{
		BookingID:   uuid.New(),
		ApartmentID: uuid.New(),
		Amount:      100000,
		DueDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name   string
		mutate func(*payment.CreateParams)
	}{
		{"MissingBooking", func(p *payment.CreateParams) { p.BookingID = uuid.Nil }},
		{"MissingApartment", func(p *payment.CreateParams) { p.ApartmentID = uuid.Nil }},
		{"NegativeAmount", func(p *payment.CreateParams) { p.Amount = -1 }},
		{"MissingDueDate", func(p *payment.CreateParams) { p.DueDate = time.Time{} }},
		{"BadStatus", func(p *payment.CreateParams) { p.Status = "declined" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)

			_, err := svc.Create(context.Background(), params)

			var invalid *apperr.ValidationError
			assert.True(t, errors.As(err, &invalid), "want validation error, got %v", err)
		})
	}
}

func TestService_Create_DefaultsToPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	repo.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *payment.Payment) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})

	svc := payment.NewService(repo)
	got, err := svc.Create(context.Background(), payment.CreateParams{
		BookingID:   uuid.New(),
		ApartmentID: uuid.New(),
		Amount:      100000,
		DueDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, got.Status)
}

func TestService_Reconcile_MatchesByAmountEarliestDueFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	tx := payment.NewMockReconcileTx(ctrl)
	svc := payment.NewService(repo)

	march := &payment.Payment{
		ID:      uuid.New(),
		Amount:  100000,
		DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:  payment.StatusPending,
	}
	april := &payment.Payment{
		ID:      uuid.New(),
		Amount:  100000,
		DueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:  payment.StatusPending,
	}

	paidOn := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	receipts := []payment.Receipt{
		{Date: paidOn, Description: "TRF Ana Martins", Amount: 100000},
	}

	repo.EXPECT().BeginReconcile(gomock.Any()).Return(tx, nil)
	// Deliberately out of due-date order: the service sorts.
	tx.EXPECT().ListPending(gomock.Any()).Return([]*payment.Payment{april, march}, nil)
	tx.EXPECT().MarkPaid(gomock.Any(), march.ID, paidOn, "bank transfer").Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	result, err := svc.Reconcile(context.Background(), receipts)
	require.NoError(t, err)
	require.Len(t, result.Matched, 1)
	assert.Equal(t, march.ID, result.Matched[0].ID)
	assert.Equal(t, payment.StatusPaid, result.Matched[0].Status)
	require.NotNil(t, result.Matched[0].PaidDate)
	assert.Equal(t, paidOn, *result.Matched[0].PaidDate)
	assert.Empty(t, result.Unmatched)
}

func TestService_Reconcile_UnmatchedReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	tx := payment.NewMockReconcileTx(ctrl)
	svc := payment.NewService(repo)

	pending := &payment.Payment{
		ID:      uuid.New(),
		Amount:  100000,
		DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:  payment.StatusPending,
	}

	date := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	receipts := []payment.Receipt{
		{Date: date, Description: "TRF Ana Martins", Amount: 100000},
		{Date: date, Description: "TRF unrelated", Amount: 4250},
		{Date: date, Description: "TRF duplicate rent", Amount: 100000},
	}

	repo.EXPECT().BeginReconcile(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListPending(gomock.Any()).Return([]*payment.Payment{pending}, nil)
	tx.EXPECT().MarkPaid(gomock.Any(), pending.ID, date, "bank transfer").Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	result, err := svc.Reconcile(context.Background(), receipts)
	require.NoError(t, err)
	assert.Len(t, result.Matched, 1)
	// One receipt with a foreign amount, one with no pending payment left.
	assert.Len(t, result.Unmatched, 2)
}

func TestService_Reconcile_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	svc := payment.NewService(repo)

	result, err := svc.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Unmatched)
}

func TestService_Reconcile_MarkPaidFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := payment.NewMockRepository(ctrl)
	tx := payment.NewMockReconcileTx(ctrl)
	svc := payment.NewService(repo)

	pending := &payment.Payment{
		ID:      uuid.New(),
		Amount:  100000,
		DueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:  payment.StatusPending,
	}
	storeErr := errors.New("db down")

	repo.EXPECT().BeginReconcile(gomock.Any()).Return(tx, nil)
	tx.EXPECT().ListPending(gomock.Any()).Return([]*payment.Payment{pending}, nil)
	tx.EXPECT().MarkPaid(gomock.Any(), pending.ID, gomock.Any(), gomock.Any()).Return(storeErr)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Reconcile(context.Background(), []payment.Receipt{
		{Date: time.Now(), Amount: 100000},
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	pendingPast := &payment.Payment{Status: payment.StatusPending, DueDate: now.AddDate(0, 0, -1)}
	pendingFuture := &payment.Payment{Status: payment.StatusPending, DueDate: now.AddDate(0, 0, 1)}
	paidPast := &payment.Payment{Status: payment.StatusPaid, DueDate: now.AddDate(0, 0, -30)}

	assert.True(t, payment.IsOverdue(pendingPast, now))
	assert.False(t, payment.IsOverdue(pendingFuture, now))
	assert.False(t, payment.IsOverdue(paidPast, now))
}
