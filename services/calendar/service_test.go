package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarRepo "slotify/database/repository/calendar"
	serviceRepo "slotify/database/repository/service"
	"slotify/models"
)

// fakeCalendarRepo mirrors the store contract in memory, including the
// merge-on-republish and toggle semantics.
type fakeCalendarRepo struct {
	mu   sync.Mutex
	days map[string]*models.DayRecord
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{days: make(map[string]*models.DayRecord)}
}

func (f *fakeCalendarRepo) UpsertDays(_ context.Context, records []models.DayRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range records {
		rec := records[i]
		rec.ID = models.DayRecordID(rec.ServiceID, rec.Date)
		if existing, ok := f.days[rec.ID]; ok {
			booked := make(map[string]struct{})
			for _, s := range existing.Slots {
				if !s.Available {
					booked[s.Time] = struct{}{}
				}
			}
			for j := range rec.Slots {
				if _, ok := booked[rec.Slots[j].Time]; ok {
					rec.Slots[j].Available = false
				}
			}
		}
		f.days[rec.ID] = &rec
	}
	return nil
}

func (f *fakeCalendarRepo) GetDay(_ context.Context, serviceID, date string) (*models.DayRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.days[models.DayRecordID(serviceID, date)]
	if !ok {
		return nil, calendarRepo.ErrDayNotFound
	}
	copied := *rec
	copied.Slots = append([]models.PersistedSlot(nil), rec.Slots...)
	return &copied, nil
}

func (f *fakeCalendarRepo) GetByService(_ context.Context, serviceID string) ([]models.DayRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DayRecord
	for _, rec := range f.days {
		if rec.ServiceID == serviceID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeCalendarRepo) SetSlotAvailability(_ context.Context, serviceID, date, slotTime string, available bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.days[models.DayRecordID(serviceID, date)]
	if !ok {
		return false, calendarRepo.ErrDayNotFound
	}
	for i := range rec.Slots {
		if rec.Slots[i].Time != slotTime {
			continue
		}
		if rec.Slots[i].Available == available {
			return false, nil
		}
		rec.Slots[i].Available = available
		return true, nil
	}
	return false, calendarRepo.ErrSlotNotFound
}

func (f *fakeCalendarRepo) ClearService(_ context.Context, serviceID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rec := range f.days {
		if rec.ServiceID == serviceID {
			rec.Slots = []models.PersistedSlot{}
			n++
		}
	}
	return n, nil
}

func (f *fakeCalendarRepo) EnsureIndexes(context.Context) error { return nil }

type fakeServiceRepo struct {
	services []models.Service
	err      error
}

func (f *fakeServiceRepo) GetAll(context.Context) ([]models.Service, error) {
	return f.services, f.err
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

type fakeBookingRepo struct {
	bookings  []models.Booking
	createErr error
}

func (f *fakeBookingRepo) GetByServiceAndDate(_ context.Context, serviceID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ServiceID == serviceID && b.Date == date &&
			b.Status != models.BookingStatusCancelled && b.Status != models.BookingStatusRejected {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

var fixedNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)

func newTestService(repo *fakeCalendarRepo, svcRepo *fakeServiceRepo, bkRepo *fakeBookingRepo) *DefaultCalendarService {
	return &DefaultCalendarService{
		Repo:     repo,
		Services: svcRepo,
		Bookings: bkRepo,
		Now:      func() time.Time { return fixedNow },
	}
}

func publishConfig() models.SlotGenerationConfig {
	return models.SlotGenerationConfig{
		ServiceID:       "svc-1",
		ProviderID:      "prov-1",
		ServiceName:     "Deep Clean",
		ServiceDuration: 60,
		WorkingHours:    models.WorkingHours{Start: "9:00 AM", End: "6:00 PM"},
		NumberOfDays:    30,
		BufferMinutes:   15,
	}
}

func TestPublishCalendarWritesWindow(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})

	days, err := svc.PublishCalendar(context.Background(), publishConfig())
	require.NoError(t, err)
	assert.Equal(t, 30, days)

	rec, err := repo.GetDay(context.Background(), "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "svc-1_2025-06-02", rec.ID)
	assert.Equal(t, "prov-1", rec.ProviderID)
	require.Len(t, rec.Slots, 7)
	for _, s := range rec.Slots {
		assert.True(t, s.Available)
	}
}

// Republishing a calendar must not release slots that bookings already hold.
func TestPublishCalendarPreservesBookedSlots(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	changed, err := svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "10:15 AM", false)
	require.NoError(t, err)
	require.True(t, changed)

	_, err = svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	rec, err := repo.GetDay(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	for _, s := range rec.Slots {
		if s.Time == "10:15 AM" {
			assert.False(t, s.Available, "booked slot must survive republish")
		} else {
			assert.True(t, s.Available)
		}
	}
}

func TestGetDaySlotsNotFound(t *testing.T) {
	svc := newTestService(newFakeCalendarRepo(), &fakeServiceRepo{}, &fakeBookingRepo{})

	day, err := svc.GetDaySlots(context.Background(), "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.False(t, day.Success)
	assert.Equal(t, DayNotFoundMessage, day.Error)
	assert.Empty(t, day.Slots)
}

func TestGetAvailableSlotsFiltersAndReportsFullyBooked(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	_, err = svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "9:00 AM", false)
	require.NoError(t, err)

	day, err := svc.GetAvailableSlots(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, day.Success)
	assert.Equal(t, 7, day.Total)
	assert.Len(t, day.Slots, 6)
	assert.Empty(t, day.Message)

	rec, err := repo.GetDay(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	for _, s := range rec.Slots {
		_, err = svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", s.Time, false)
		require.NoError(t, err)
	}

	day, err = svc.GetAvailableSlots(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, day.Success)
	assert.Empty(t, day.Slots)
	assert.Equal(t, FullyBookedMessage, day.Message)
}

// Toggling to the same value twice is a silent no-op the second time.
func TestSetSlotAvailabilityIdempotent(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	changed, err := svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "9:00 AM", false)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "9:00 AM", false)
	require.NoError(t, err)
	assert.False(t, changed)

	rec, err := repo.GetDay(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.False(t, rec.Slots[0].Available)
}

func TestSetSlotAvailabilityNotFound(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	_, err := svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "9:00 AM", false)
	assert.ErrorIs(t, err, calendarRepo.ErrDayNotFound)

	_, err = svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	_, err = svc.SetSlotAvailability(ctx, "svc-1", "2025-06-02", "9:07 AM", false)
	assert.ErrorIs(t, err, calendarRepo.ErrSlotNotFound)
}

func TestBookSlotClaimsAndRecords(t *testing.T) {
	repo := newFakeCalendarRepo()
	bkRepo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeServiceRepo{}, bkRepo)
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	req := BookingRequest{
		UserID:    "user-1",
		ServiceID: "svc-1",
		Date:      "2025-06-02",
		Time:      "10:15 AM",
		Price:     80,
	}
	booking, err := svc.BookSlot(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "prov-1", booking.ProviderID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	require.Len(t, bkRepo.bookings, 1)

	// second attempt on the same slot loses the race
	_, err = svc.BookSlot(ctx, req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookSlotReleasesOnInsertFailure(t *testing.T) {
	repo := newFakeCalendarRepo()
	bkRepo := &fakeBookingRepo{createErr: errors.New("store down")}
	svc := newTestService(repo, &fakeServiceRepo{}, bkRepo)
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	_, err = svc.BookSlot(ctx, BookingRequest{
		UserID: "user-1", ServiceID: "svc-1", Date: "2025-06-02", Time: "9:00 AM",
	})
	require.Error(t, err)

	rec, err := repo.GetDay(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, rec.Slots[0].Available, "slot must be released when the insert fails")
}

func TestGetLiveAvailability(t *testing.T) {
	repo := newFakeCalendarRepo()
	svcRepo := &fakeServiceRepo{services: []models.Service{{
		ID: "svc-1", ProviderID: "prov-1", Name: "Deep Clean", Duration: 60, Active: true,
	}}}
	bkRepo := &fakeBookingRepo{bookings: []models.Booking{
		{ID: "bk-1", ServiceID: "svc-1", Date: "2025-06-02", Time: "10:00 AM", Status: models.BookingStatusConfirmed},
		{ID: "bk-2", ServiceID: "svc-1", Date: "2025-06-02", Time: "2:00 PM", Status: models.BookingStatusCancelled},
	}}
	svc := newTestService(repo, svcRepo, bkRepo)
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	live, err := svc.GetLiveAvailability(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, live.Success)
	assert.Equal(t, 7, live.Total)
	// the 10:00 AM booking occupies [10:00, 11:00) and knocks out the
	// 10:15 AM candidate only; the cancelled 2:00 PM one occupies nothing
	require.Len(t, live.Open, 6)
	for _, c := range live.Open {
		assert.NotEqual(t, "10:15 AM", c.StartTime)
	}
}

func TestGetLiveAvailabilityBadInput(t *testing.T) {
	svc := newTestService(newFakeCalendarRepo(), &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	live, err := svc.GetLiveAvailability(ctx, "svc-1", "06/02/2025")
	require.NoError(t, err)
	assert.False(t, live.Success)
	assert.Contains(t, live.Error, "invalid date")

	live, err = svc.GetLiveAvailability(ctx, "ghost", "2025-06-02")
	require.NoError(t, err)
	assert.False(t, live.Success)
	assert.Equal(t, "service not found", live.Error)
}

func TestClearCalendar(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo, &fakeServiceRepo{}, &fakeBookingRepo{})
	ctx := context.Background()

	_, err := svc.PublishCalendar(ctx, publishConfig())
	require.NoError(t, err)

	n, err := svc.ClearCalendar(ctx, "svc-1")
	require.NoError(t, err)
	assert.EqualValues(t, 30, n)

	day, err := svc.GetDaySlots(ctx, "svc-1", "2025-06-02")
	require.NoError(t, err)
	assert.True(t, day.Success)
	assert.Empty(t, day.Slots)
}
