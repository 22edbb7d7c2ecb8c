package booking

import (
	"context"

	"studiobook/models"

	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByApprovalToken(ctx context.Context, token string) (*models.Booking, error) {
	args := m.Called(ctx, token)
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListActiveByDate(ctx context.Context, orgID, date string) ([]models.Booking, error) {
	args := m.Called(ctx, orgID, date)
	if bs, ok := args.Get(0).([]models.Booking); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListActiveByDateRange(ctx context.Context, orgID, startDate, endDate string) ([]models.Booking, error) {
	args := m.Called(ctx, orgID, startDate, endDate)
	if bs, ok := args.Get(0).([]models.Booking); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) TransitionStatus(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	args := m.Called(ctx, id, fromStatus, toStatus)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) HasOtherActiveOnDate(ctx context.Context, orgID, date, excludeID string) (bool, error) {
	args := m.Called(ctx, orgID, date, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) SetCadenceRefs(ctx context.Context, id, contactID, cadenceDealID, dealID string) error {
	args := m.Called(ctx, id, contactID, cadenceDealID, dealID)
	return args.Error(0)
}

type mockCalendarRepo struct {
	mock.Mock
}

func (m *mockCalendarRepo) GetByDate(ctx context.Context, orgID, date string) (*models.CalendarDay, error) {
	args := m.Called(ctx, orgID, date)
	if d, ok := args.Get(0).(*models.CalendarDay); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCalendarRepo) ListRange(ctx context.Context, orgID, startDate, endDate string) ([]models.CalendarDay, error) {
	args := m.Called(ctx, orgID, startDate, endDate)
	if ds, ok := args.Get(0).([]models.CalendarDay); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCalendarRepo) Upsert(ctx context.Context, day *models.CalendarDay) (*models.CalendarDay, error) {
	args := m.Called(ctx, day)
	if d, ok := args.Get(0).(*models.CalendarDay); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCalendarRepo) UpsertNote(ctx context.Context, orgID, date, notes string) error {
	args := m.Called(ctx, orgID, date, notes)
	return args.Error(0)
}

func (m *mockCalendarRepo) ClearNote(ctx context.Context, orgID, date string) error {
	args := m.Called(ctx, orgID, date)
	return args.Error(0)
}

type mockCRM struct {
	mock.Mock
}

func (m *mockCRM) SyncIntake(ctx context.Context, booking *models.Booking) (string, string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockCRM) MarkDealWon(ctx context.Context, dealID string) error {
	args := m.Called(ctx, dealID)
	return args.Error(0)
}

func (m *mockCRM) MarkDealLost(ctx context.Context, dealID, closeReason string) error {
	args := m.Called(ctx, dealID, closeReason)
	return args.Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) BookingRequested(booking *models.Booking) {
	m.Called(booking)
}

func (m *mockDispatcher) BookingApproved(booking *models.Booking) {
	m.Called(booking)
}

func (m *mockDispatcher) BookingDenied(booking *models.Booking) {
	m.Called(booking)
}
