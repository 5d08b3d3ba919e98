package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "localpro/database/repository/booking"
	providerRepo "localpro/database/repository/provider"
	"localpro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEngine struct {
	isAvailableFunc func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error)
}

func (m *mockEngine) IsAvailable(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
	return m.isAvailableFunc(ctx, providerID, start, durationMinutes)
}

func (m *mockEngine) NextAvailableSlots(ctx context.Context, providerID string, horizonDays, maxResults int) ([]time.Time, error) {
	return nil, nil
}

type mockBookingStore struct {
	getFunc          func(ctx context.Context, bookingID string) (*models.Booking, error)
	createFunc       func(ctx context.Context, booking *models.Booking) error
	updateStatusFunc func(ctx context.Context, bookingID string, status models.BookingStatus) error
	reserveFunc      func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error)
}

func (m *mockBookingStore) FindBookings(ctx context.Context, providerID string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return m.getFunc(ctx, bookingID)
}

func (m *mockBookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingStore) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, bookingID, status)
	}
	return nil
}

func (m *mockBookingStore) ReserveInterval(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
	if m.reserveFunc != nil {
		return m.reserveFunc(ctx, providerID, start, durationMinutes)
	}
	return func() {}, nil
}

type mockProviderStore struct {
	provider *models.Provider
}

func (m *mockProviderStore) GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error) {
	if m.provider == nil {
		return nil, errors.New("provider not found")
	}
	return m.provider, nil
}

func (m *mockProviderStore) UpsertProvider(ctx context.Context, provider *models.Provider) error {
	return nil
}

func (m *mockProviderStore) SearchNearby(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	return nil, nil
}

type mockPayments struct {
	createFunc func(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error)
}

func (m *mockPayments) CreatePaymentIntent(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error) {
	return m.createFunc(ctx, req)
}

type mockReminders struct {
	scheduled []*models.Booking
	err       error
}

func (m *mockReminders) ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, booking)
	return nil
}

var testStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func confirmReq() ConfirmRequest {
	return ConfirmRequest{
		HostID:          "host-1",
		ClientID:        "client-1",
		ServiceType:     "plumbing",
		Start:           testStart,
		DurationMinutes: 90,
		Currency:        "usd",
	}
}

func testService(engine *mockEngine, store *mockBookingStore, payments *mockPayments, reminders *mockReminders) *DefaultBookingService {
	return &DefaultBookingService{
		Engine:    engine,
		Bookings:  store,
		Providers: &mockProviderStore{provider: &models.Provider{ID: "host-1", HourlyRate: 40}},
		Payments:  payments,
		Reminders: reminders,
		Logger:    zap.NewNop(),
	}
}

func TestConfirmBookingSuccess(t *testing.T) {
	released := false
	var persisted *models.Booking

	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		return true, nil
	}}
	store := &mockBookingStore{
		reserveFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
			return func() { released = true }, nil
		},
		createFunc: func(ctx context.Context, booking *models.Booking) error {
			persisted = booking
			return nil
		},
	}
	payments := &mockPayments{createFunc: func(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error) {
		assert.Equal(t, 60.0, req.Amount, "90 minutes at 40/hour")
		return &models.PaymentIntent{ID: "pi_123", ClientSecret: "secret", Status: "requires_payment_method"}, nil
	}}
	reminders := &mockReminders{}

	result, err := testService(engine, store, payments, reminders).ConfirmBooking(context.Background(), confirmReq())
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, models.BookingStatusPendingPayment, persisted.Status)
	assert.Equal(t, "pi_123", persisted.PaymentIntentID)
	assert.Equal(t, 60.0, persisted.TotalPrice)
	assert.Equal(t, persisted, result.Booking)
	assert.Equal(t, "pi_123", result.PaymentIntent.ID)
	assert.True(t, released, "the interval reservation must be released")
	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, persisted.ID, reminders.scheduled[0].ID)
}

func TestConfirmBookingSlotNotFree(t *testing.T) {
	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		return false, nil
	}}
	store := &mockBookingStore{
		reserveFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
			t.Fatal("must not reserve when the slot is not free")
			return nil, nil
		},
	}

	_, err := testService(engine, store, &mockPayments{}, &mockReminders{}).ConfirmBooking(context.Background(), confirmReq())
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "slotUnavailable", bErr.Code)
}

func TestConfirmBookingIntervalAlreadyReserved(t *testing.T) {
	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		return true, nil
	}}
	store := &mockBookingStore{
		reserveFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
			return nil, bookingRepo.ErrIntervalReserved
		},
	}

	_, err := testService(engine, store, &mockPayments{}, &mockReminders{}).ConfirmBooking(context.Background(), confirmReq())
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "slotUnavailable", bErr.Code)
}

func TestConfirmBookingRecheckLoses(t *testing.T) {
	// The advisory check passes, but a competing booking lands before the
	// re-check under the reservation.
	calls := 0
	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		calls++
		return calls == 1, nil
	}}
	released := false
	store := &mockBookingStore{
		reserveFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (func(), error) {
			return func() { released = true }, nil
		},
		createFunc: func(ctx context.Context, booking *models.Booking) error {
			t.Fatal("must not persist after losing the re-check")
			return nil
		},
	}

	_, err := testService(engine, store, &mockPayments{}, &mockReminders{}).ConfirmBooking(context.Background(), confirmReq())
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "slotUnavailable", bErr.Code)
	assert.True(t, released, "the reservation must be released on failure too")
}

func TestConfirmBookingPaymentFailureLeavesNoBooking(t *testing.T) {
	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		return true, nil
	}}
	store := &mockBookingStore{
		createFunc: func(ctx context.Context, booking *models.Booking) error {
			t.Fatal("must not persist a booking without a payment intent")
			return nil
		},
	}
	payments := &mockPayments{createFunc: func(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error) {
		return nil, errors.New("processor down")
	}}

	_, err := testService(engine, store, payments, &mockReminders{}).ConfirmBooking(context.Background(), confirmReq())
	assert.Error(t, err)
}

func TestConfirmBookingReminderFailureIsNotFatal(t *testing.T) {
	engine := &mockEngine{isAvailableFunc: func(ctx context.Context, providerID string, start time.Time, durationMinutes int) (bool, error) {
		return true, nil
	}}
	store := &mockBookingStore{}
	payments := &mockPayments{createFunc: func(ctx context.Context, req models.PaymentRequest) (*models.PaymentIntent, error) {
		return &models.PaymentIntent{ID: "pi_123"}, nil
	}}
	reminders := &mockReminders{err: errors.New("queue unreachable")}

	result, err := testService(engine, store, payments, reminders).ConfirmBooking(context.Background(), confirmReq())
	require.NoError(t, err)
	assert.NotNil(t, result.Booking)
}

func TestCancelBookingAuthorization(t *testing.T) {
	existing := &models.Booking{
		ID:       "b-1",
		HostID:   "host-1",
		ClientID: "client-1",
		Status:   models.BookingStatusConfirmed,
	}
	var updatedTo models.BookingStatus
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return existing, nil
		},
		updateStatusFunc: func(ctx context.Context, bookingID string, status models.BookingStatus) error {
			updatedTo = status
			return nil
		},
	}
	svc := testService(&mockEngine{}, store, &mockPayments{}, &mockReminders{})
	ctx := context.Background()

	err := svc.CancelBooking(ctx, "b-1", "stranger")
	var bErr *BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "forbidden", bErr.Code)

	require.NoError(t, svc.CancelBooking(ctx, "b-1", "client-1"))
	assert.Equal(t, models.BookingStatusCanceled, updatedTo)

	// The host may cancel too.
	require.NoError(t, svc.CancelBooking(ctx, "b-1", "host-1"))
}

func TestCancelBookingTerminalStates(t *testing.T) {
	store := &mockBookingStore{
		getFunc: func(ctx context.Context, bookingID string) (*models.Booking, error) {
			return &models.Booking{ID: "b-1", ClientID: "client-1", Status: models.BookingStatusCompleted}, nil
		},
		updateStatusFunc: func(ctx context.Context, bookingID string, status models.BookingStatus) error {
			t.Fatal("completed bookings must not transition")
			return nil
		},
	}
	svc := testService(&mockEngine{}, store, &mockPayments{}, &mockReminders{})

	err := svc.CancelBooking(context.Background(), "b-1", "client-1")
	assert.Error(t, err)
}
