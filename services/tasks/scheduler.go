package tasks

import (
	"time"

	"routed/config"
	"routed/models"

	"github.com/hibiken/asynq"
)

// ReminderScheduler enqueues booking reminders for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqScheduler is the production scheduler backed by the reminder queue.
type AsynqScheduler struct {
	client *asynq.Client
}

func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

func (s *AsynqScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
