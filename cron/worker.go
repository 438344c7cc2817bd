package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"edupath/config"
	"edupath/models"
	"edupath/services/enquiry"
	"edupath/tasks"

	"github.com/hibiken/asynq"
)

// InitConfirmationWorker runs the async worker that delivers post-payment
// confirmation emails in the background.
func InitConfirmationWorker(api enquiry.API) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeConfirmationSend, handleConfirmationTask(api))

	go func() {
		log.Println("[ConfirmationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ConfirmationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ConfirmationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleConfirmationTask sends the confirmation mail through the upstream
// email API. Delivery is best-effort: a failure is logged and the task is
// not retried, since the booking is already confirmed.
func handleConfirmationTask(api enquiry.API) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var mail models.ConfirmationEmail
		if err := json.Unmarshal(task.Payload(), &mail); err != nil {
			log.Printf("[ConfirmationWorker] invalid payload: %v", err)
			return nil
		}

		if err := api.SendCounselingConfirmation(ctx, mail); err != nil {
			log.Printf("[ConfirmationWorker] failed to send confirmation email to %s: %v", mail.UserEmail, err)
			return nil
		}

		log.Printf("[ConfirmationWorker] confirmation email sent to %s for payment %s", mail.UserEmail, mail.PaymentID)
		return nil
	}
}
