package calendar

import (
	"context"
	"time"

	serviceRepo "slotify/database/repository/service"
	"slotify/models"
	"slotify/utils"

	"go.uber.org/zap"
)

// ProgressFunc is invoked after each migrated service so callers can render
// a progress indicator.
type ProgressFunc func(current, total int, serviceName string)

// MigrationService is the administrative batch entry point that (re)builds
// persisted calendars for every known service.
type MigrationService interface {
	RegenerateAllCalendars(ctx context.Context, progress ProgressFunc) (*models.MigrationResult, error)
}

// DefaultMigrationService runs a single ordered pass over all services.
// Per-item failures are recorded and the pass continues; only a failure to
// list the services aborts the run.
type DefaultMigrationService struct {
	Services serviceRepo.ServiceRepository
	Calendar CalendarService
	// Delay is the fixed pause between items, a simple throttle so the
	// store is not hit with back-to-back bulk writes. Zero falls back to
	// 150ms.
	Delay time.Duration
}

func (m *DefaultMigrationService) delay() time.Duration {
	if m.Delay > 0 {
		return m.Delay
	}
	return 150 * time.Millisecond
}

// RegenerateAllCalendars migrates every service onto a fresh 30-day calendar
// with the uniform default working hours. The result summarizes the pass;
// Success is true only when nothing failed.
func (m *DefaultMigrationService) RegenerateAllCalendars(ctx context.Context, progress ProgressFunc) (*models.MigrationResult, error) {
	logger := utils.GetLogger()

	services, err := m.Services.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.MigrationResult{Total: len(services)}
	for i, svc := range services {
		if err := m.migrateOne(ctx, svc); err != nil {
			logger.Warn("calendar migration failed for service",
				zap.String("serviceId", svc.ID),
				zap.String("serviceName", svc.Name),
				zap.Error(err))
			result.Failed++
			result.Failures = append(result.Failures, models.MigrationFailure{
				ServiceID: svc.ID,
				Error:     err.Error(),
			})
		} else {
			result.Succeeded++
		}

		if progress != nil {
			progress(i+1, result.Total, svc.Name)
		}
		if i < len(services)-1 {
			time.Sleep(m.delay())
		}
	}

	result.Success = result.Failed == 0
	logger.Info("calendar migration finished",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (m *DefaultMigrationService) migrateOne(ctx context.Context, svc models.Service) error {
	if svc.ProviderID == "" {
		return errMissingProvider
	}
	if svc.Duration < 1 || svc.Duration > 24*60 {
		return errInvalidDuration
	}

	_, err := m.Calendar.PublishCalendar(ctx, models.SlotGenerationConfig{
		ServiceID:       svc.ID,
		ProviderID:      svc.ProviderID,
		ServiceName:     svc.Name,
		ServiceDuration: svc.Duration,
		WorkingHours:    DefaultWorkingHours,
		NumberOfDays:    models.DefaultHorizonDays,
		BufferMinutes:   models.DefaultBufferMinutes,
	})
	return err
}
