package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "slotify/database/repository/booking"
	calendarRepo "slotify/database/repository/calendar"
	serviceRepo "slotify/database/repository/service"
	"slotify/models"
	"slotify/services/slots"
	"slotify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWorkingHours is the uniform day window applied when a service has
// no hours of its own (migration, live fallback).
var DefaultWorkingHours = models.WorkingHours{Start: "9:00 AM", End: "6:00 PM"}

const availabilityCacheTTL = 60 * time.Second

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Repo     calendarRepo.CalendarRepository
	Services serviceRepo.ServiceRepository
	Bookings bookingRepo.BookingRepository
	// Cache holds hot available-slot reads; nil disables caching.
	Cache *redis.Client
	// Now is the injected clock anchoring day zero of the rolling window.
	// Nil falls back to time.Now.
	Now func() time.Time
}

func (s *DefaultCalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// PublishCalendar builds the rolling slot map for one service and writes it
// through the calendar store. Existing bookings on surviving slot times are
// preserved by the store's merge semantics.
func (s *DefaultCalendarService) PublishCalendar(ctx context.Context, cfg models.SlotGenerationConfig) (int, error) {
	sm, err := slots.BuildSlotMap(cfg, s.now())
	if err != nil {
		return 0, err
	}

	records := make([]models.DayRecord, 0, len(sm.Dates))
	for _, date := range sm.Dates {
		records = append(records, models.DayRecord{
			ID:              models.DayRecordID(cfg.ServiceID, date),
			ServiceID:       cfg.ServiceID,
			ProviderID:      cfg.ProviderID,
			ServiceName:     cfg.ServiceName,
			Date:            date,
			ServiceDuration: cfg.ServiceDuration,
			WorkingHours:    cfg.WorkingHours,
			Slots:           sm.Days[date],
		})
	}

	if err := s.Repo.UpsertDays(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to persist calendar for service %s: %w", cfg.ServiceID, err)
	}
	for _, date := range sm.Dates {
		s.invalidateCache(ctx, cfg.ServiceID, date)
	}

	utils.GetLogger().Info("calendar published",
		zap.String("serviceId", cfg.ServiceID),
		zap.Int("days", len(sm.Dates)))
	return len(sm.Dates), nil
}

// GetDaySlots returns the full persisted slot list for one date. A missing
// DayRecord is a normal outcome, reported in the payload rather than as an
// error.
func (s *DefaultCalendarService) GetDaySlots(ctx context.Context, serviceID, date string) (*DayAvailability, error) {
	rec, err := s.Repo.GetDay(ctx, serviceID, date)
	if err == calendarRepo.ErrDayNotFound {
		return &DayAvailability{
			ServiceID: serviceID,
			Date:      date,
			Error:     DayNotFoundMessage,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &DayAvailability{
		Success:   true,
		ServiceID: serviceID,
		Date:      date,
		Slots:     rec.Slots,
		Total:     len(rec.Slots),
	}, nil
}

// GetAvailableSlots filters the persisted day down to slots still marked
// available. Results are cached briefly since this backs the hottest screen.
func (s *DefaultCalendarService) GetAvailableSlots(ctx context.Context, serviceID, date string) (*DayAvailability, error) {
	if cached := s.readCache(ctx, serviceID, date); cached != nil {
		return cached, nil
	}

	day, err := s.GetDaySlots(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}
	if !day.Success {
		return day, nil
	}

	open := make([]models.PersistedSlot, 0, len(day.Slots))
	for _, slot := range day.Slots {
		if slot.Available {
			open = append(open, slot)
		}
	}

	result := &DayAvailability{
		Success:   true,
		ServiceID: serviceID,
		Date:      date,
		Slots:     open,
		Total:     day.Total,
	}
	if day.Total > 0 && len(open) == 0 {
		result.Message = FullyBookedMessage
	}
	s.writeCache(ctx, serviceID, date, result)
	return result, nil
}

// GetLiveAvailability recomputes open slots from live booking records,
// threading the service's real duration into the conflict resolver. The
// 60-minute fallback only applies when the service record carries no
// duration.
func (s *DefaultCalendarService) GetLiveAvailability(ctx context.Context, serviceID, date string) (*LiveAvailability, error) {
	day, err := time.ParseInLocation(slots.DateFormat, date, time.Local)
	if err != nil {
		return &LiveAvailability{
			ServiceID: serviceID,
			Date:      date,
			Error:     fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date),
		}, nil
	}

	svc, err := s.Services.GetByID(ctx, serviceID)
	if err == serviceRepo.ErrServiceNotFound {
		return &LiveAvailability{
			ServiceID: serviceID,
			Date:      date,
			Error:     "service not found",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	duration := svc.Duration
	hours := DefaultWorkingHours
	buffer := models.DefaultBufferMinutes
	if rec, err := s.Repo.GetDay(ctx, serviceID, date); err == nil {
		hours = rec.WorkingHours
		if rec.ServiceDuration > 0 {
			duration = rec.ServiceDuration
		}
	} else if err != calendarRepo.ErrDayNotFound {
		return nil, err
	}
	if duration <= 0 {
		duration = slots.DefaultBookingDuration
	}

	candidates, err := slots.GenerateDaySlots(day, hours, duration, buffer)
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.GetByServiceAndDate(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}

	open, total, err := slots.ResolveConflicts(candidates, bookings, duration)
	if err != nil {
		return nil, err
	}
	return &LiveAvailability{
		Success:   true,
		ServiceID: serviceID,
		Date:      date,
		Open:      open,
		Total:     total,
	}, nil
}

// SetSlotAvailability toggles one slot through the store's transactional
// primitive and drops the cached availability for that date.
func (s *DefaultCalendarService) SetSlotAvailability(ctx context.Context, serviceID, date, slotTime string, available bool) (bool, error) {
	changed, err := s.Repo.SetSlotAvailability(ctx, serviceID, date, slotTime, available)
	if err != nil {
		return false, err
	}
	if changed {
		s.invalidateCache(ctx, serviceID, date)
	}
	return changed, nil
}

// BookSlot claims a slot and records the booking. The claim and the insert
// are not one transaction; a failed insert releases the slot again.
func (s *DefaultCalendarService) BookSlot(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	rec, err := s.Repo.GetDay(ctx, req.ServiceID, req.Date)
	if err != nil {
		return nil, err
	}

	changed, err := s.SetSlotAvailability(ctx, req.ServiceID, req.Date, req.Time, false)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrSlotTaken
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		ProviderID: rec.ProviderID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.BookingStatusPending,
		Price:      req.Price,
		CreatedAt:  s.now(),
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		if _, relErr := s.SetSlotAvailability(ctx, req.ServiceID, req.Date, req.Time, true); relErr != nil {
			utils.GetLogger().Error("failed to release slot after booking insert error",
				zap.String("serviceId", req.ServiceID),
				zap.String("date", req.Date),
				zap.String("time", req.Time),
				zap.Error(relErr))
		}
		return nil, err
	}
	return booking, nil
}

// GetServiceCalendar returns every persisted day of a service.
func (s *DefaultCalendarService) GetServiceCalendar(ctx context.Context, serviceID string) ([]models.DayRecord, error) {
	return s.Repo.GetByService(ctx, serviceID)
}

// ClearCalendar empties all slot lists of a service. Cached reads expire on
// their own TTL.
func (s *DefaultCalendarService) ClearCalendar(ctx context.Context, serviceID string) (int64, error) {
	return s.Repo.ClearService(ctx, serviceID)
}

func availabilityCacheKey(serviceID, date string) string {
	return fmt.Sprintf("availability:%s:%s", serviceID, date)
}

func (s *DefaultCalendarService) readCache(ctx context.Context, serviceID, date string) *DayAvailability {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, availabilityCacheKey(serviceID, date)).Result()
	if err != nil {
		return nil
	}
	var result DayAvailability
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultCalendarService) writeCache(ctx context.Context, serviceID, date string, result *DayAvailability) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, availabilityCacheKey(serviceID, date), raw, availabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability",
			zap.String("serviceId", serviceID), zap.String("date", date), zap.Error(err))
	}
}

func (s *DefaultCalendarService) invalidateCache(ctx context.Context, serviceID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availabilityCacheKey(serviceID, date)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("serviceId", serviceID), zap.String("date", date), zap.Error(err))
	}
}
