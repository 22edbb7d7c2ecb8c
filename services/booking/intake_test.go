package booking

import (
	"context"
	"errors"
	"testing"

	calendarRepo "studiobook/database/repository/calendar"
	"studiobook/models"
	"studiobook/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrg = "org-test"

func validInput() models.BookingRequestInput {
	return models.BookingRequestInput{
		ClientName:  "Ada Lovelace",
		ClientEmail: "ada@example.com",
		BookingType: models.TypePersonal,
		BookingDate: "2026-10-14",
		StartTime:   "10:00",
		EndTime:     "12:00",
	}
}

func newIntake(bookings *mockBookingRepo, cal *mockCalendarRepo, crmSvc *mockCRM, disp *mockDispatcher) *DefaultIntakeService {
	return &DefaultIntakeService{
		Bookings: bookings,
		Calendar: cal,
		CRM:      crmSvc,
		Notifier: disp,
		OrgID:    testOrg,
	}
}

func TestSubmitHappyPath(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	crmSvc := new(mockCRM)
	disp := new(mockDispatcher)
	svc := newIntake(bookings, cal, crmSvc, disp)

	input := validInput()
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return([]models.Booking{}, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).Return(nil, calendarRepo.ErrNotFound)

	var created *models.Booking
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.Booking) }).
		Return(nil)
	cal.On("UpsertNote", mock.Anything, testOrg, input.BookingDate, "Pending booking from Ada Lovelace").Return(nil)
	crmSvc.On("SyncIntake", mock.Anything, mock.Anything).Return("contact-1", "deal-1", nil)
	bookings.On("SetCadenceRefs", mock.Anything, mock.Anything, "contact-1", "deal-1", "deal-1").Return(nil)
	disp.On("BookingRequested", mock.Anything).Return()

	receipt, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, created.ID, receipt.BookingID)
	assert.Equal(t, "deal-1", receipt.DealID)
	assert.Equal(t, "contact-1", receipt.ContactID)

	assert.Equal(t, models.StatusPending, created.ApprovalStatus)
	assert.NotEmpty(t, created.ApprovalToken)
	require.NotNil(t, created.ApprovalExpiresAt)
	assert.Equal(t, "12:00", created.EndTime)

	bookings.AssertExpectations(t)
	cal.AssertExpectations(t)
	crmSvc.AssertExpectations(t)
	disp.AssertExpectations(t)
}

func TestSubmitValidationFailures(t *testing.T) {
	svc := newIntake(new(mockBookingRepo), new(mockCalendarRepo), new(mockCRM), new(mockDispatcher))

	cases := []struct {
		name   string
		mutate func(*models.BookingRequestInput)
	}{
		{"missing name", func(in *models.BookingRequestInput) { in.ClientName = " " }},
		{"missing email", func(in *models.BookingRequestInput) { in.ClientEmail = "" }},
		{"missing date", func(in *models.BookingRequestInput) { in.BookingDate = "" }},
		{"bad date format", func(in *models.BookingRequestInput) { in.BookingDate = "14-10-2026" }},
		{"impossible date", func(in *models.BookingRequestInput) { in.BookingDate = "2026-13-40" }},
		{"bad time format", func(in *models.BookingRequestInput) { in.StartTime = "10am" }},
		{"out of range start time", func(in *models.BookingRequestInput) { in.StartTime = "99:99" }},
		{"out of range end time", func(in *models.BookingRequestInput) { in.EndTime = "24:30" }},
		{"bad booking type", func(in *models.BookingRequestInput) { in.BookingType = "wedding" }},
		{"event without people", func(in *models.BookingRequestInput) {
			in.BookingType = models.TypeEvent
			in.NumPeople = 0
		}},
		{"bad location type", func(in *models.BookingRequestInput) { in.LocationType = "somewhere" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Submit(context.Background(), input)
			var vErr *ValidationError
			require.Error(t, err)
			assert.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
		})
	}
}

func TestSubmitUnavailableSlot(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	svc := newIntake(bookings, cal, new(mockCRM), new(mockDispatcher))

	input := validInput()
	existing := []models.Booking{{
		ApprovalStatus: models.StatusApproved,
		StartTime:      "09:00",
		EndTime:        "11:00",
	}}
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return(existing, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).Return(nil, calendarRepo.ErrNotFound)

	_, err := svc.Submit(context.Background(), input)
	var uErr *UnavailableError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, availability.ReasonTimeConflict, uErr.Reason)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitDayOff(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	svc := newIntake(bookings, cal, new(mockCRM), new(mockDispatcher))

	input := validInput()
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return([]models.Booking{}, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).
		Return(&models.CalendarDay{Date: input.BookingDate, DayStatus: models.DayOff}, nil)

	_, err := svc.Submit(context.Background(), input)
	var uErr *UnavailableError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, availability.ReasonDayOff, uErr.Reason)
}

func TestSubmitSideEffectFailuresDoNotFailIntake(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	crmSvc := new(mockCRM)
	disp := new(mockDispatcher)
	svc := newIntake(bookings, cal, crmSvc, disp)

	input := validInput()
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return([]models.Booking{}, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).Return(nil, calendarRepo.ErrNotFound)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	// Every downstream effect fails; intake still succeeds.
	cal.On("UpsertNote", mock.Anything, testOrg, input.BookingDate, mock.Anything).Return(errors.New("calendar down"))
	crmSvc.On("SyncIntake", mock.Anything, mock.Anything).Return("", "", errors.New("crm down"))
	disp.On("BookingRequested", mock.Anything).Return()

	receipt, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.BookingID)
	// With no deal from the pipeline the receipt falls back to a local ref.
	assert.Equal(t, "portfolio-"+receipt.BookingID, receipt.DealID)
	assert.Empty(t, receipt.ContactID)
	disp.AssertCalled(t, "BookingRequested", mock.Anything)
}

func TestSubmitCorruptStoredBookingIsNotTheRequestersFault(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	svc := newIntake(bookings, cal, new(mockCRM), new(mockDispatcher))

	input := validInput()
	corrupt := []models.Booking{{
		ID:             "bk-corrupt",
		ApprovalStatus: models.StatusApproved,
		StartTime:      "banana",
		EndTime:        "11:00",
	}}
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return(corrupt, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).Return(nil, calendarRepo.ErrNotFound)

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	var vErr *ValidationError
	var uErr *UnavailableError
	assert.False(t, errors.As(err, &vErr), "stored-data corruption must not surface as a validation error")
	assert.False(t, errors.As(err, &uErr))
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitStoreFailure(t *testing.T) {
	bookings := new(mockBookingRepo)
	cal := new(mockCalendarRepo)
	svc := newIntake(bookings, cal, new(mockCRM), new(mockDispatcher))

	input := validInput()
	bookings.On("ListActiveByDate", mock.Anything, testOrg, input.BookingDate).Return([]models.Booking{}, nil)
	cal.On("GetByDate", mock.Anything, testOrg, input.BookingDate).Return(nil, calendarRepo.ErrNotFound)
	bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("write concern failed"))

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	var vErr *ValidationError
	var uErr *UnavailableError
	assert.False(t, errors.As(err, &vErr))
	assert.False(t, errors.As(err, &uErr))
}
