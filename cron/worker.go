package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	serviceRepo "slotify/database/repository/service"
	"slotify/models"
	"slotify/services/calendar"
	"slotify/utils"

	"github.com/hibiken/asynq"
)

const TypeCalendarRefresh = "calendar:refresh"

// refreshPayload identifies the service whose calendar should be rebuilt.
type refreshPayload struct {
	ServiceID string `json:"serviceId"`
}

// NewRefreshTask builds an asynq task that regenerates one service calendar.
func NewRefreshTask(serviceID string) (*asynq.Task, error) {
	payload, err := json.Marshal(refreshPayload{ServiceID: serviceID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarRefresh, payload), nil
}

// EnqueueRefresh schedules a calendar rebuild on the task queue.
func EnqueueRefresh(client *asynq.Client, serviceID string) error {
	task, err := NewRefreshTask(serviceID)
	if err != nil {
		return err
	}
	if _, err := client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(2*time.Minute)); err != nil {
		return fmt.Errorf("failed to enqueue calendar refresh for service %s: %w", serviceID, err)
	}
	return nil
}

// InitRefreshWorker runs the async worker in background.
func InitRefreshWorker(services serviceRepo.ServiceRepository, cal calendar.CalendarService) {
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalendarRefresh, handleRefreshTask(services, cal))

	// Start async worker with retry logic
	go func() {
		log.Println("[RefreshWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RefreshWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RefreshWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleRefreshTask(services serviceRepo.ServiceRepository, cal calendar.CalendarService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p refreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RefreshHandler] Invalid payload: %v", err)
			return err
		}

		svc, err := services.GetByID(ctx, p.ServiceID)
		if err != nil {
			log.Printf("[RefreshHandler] Unknown service %s: %v", p.ServiceID, err)
			return err
		}

		days, err := cal.PublishCalendar(ctx, models.SlotGenerationConfig{
			ServiceID:       svc.ID,
			ProviderID:      svc.ProviderID,
			ServiceName:     svc.Name,
			ServiceDuration: svc.Duration,
			WorkingHours:    calendar.DefaultWorkingHours,
			NumberOfDays:    models.DefaultHorizonDays,
			BufferMinutes:   models.DefaultBufferMinutes,
		})
		if err != nil {
			log.Printf("[RefreshHandler] Failed to refresh calendar for %s: %v", p.ServiceID, err)
			return err
		}

		log.Printf("[RefreshHandler] Refreshed %d days for service %s", days, p.ServiceID)
		return nil
	}
}
