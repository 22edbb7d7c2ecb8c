// Package cron runs the background asynq worker that drains the side-effect
// queue: booking lifecycle emails and sales-pipeline stage moves.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"studiobook/config"
	"studiobook/models"
	"studiobook/services/crm"
	"studiobook/services/mailer"
	"studiobook/services/tasks"
	"studiobook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitWorker starts the async worker in the background.
func InitWorker(mailSvc mailer.Service, crmSvc crm.SyncService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(mailSvc))
	mux.HandleFunc(tasks.TypeDealStage, handleDealStageTask(crmSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("worker: starting async worker")

		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("worker: failed to start",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleEmailTask(mailSvc mailer.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("worker: invalid email payload", zap.Error(err))
			return err
		}

		var err error
		switch p.Kind {
		case tasks.EmailBookingReceived:
			err = mailSvc.SendBookingReceived(ctx, &p.Booking)
		case tasks.EmailApprovalRequest:
			// The token travels beside the booking snapshot; put it back so
			// the approve/deny links render.
			p.Booking.ApprovalToken = p.ApprovalToken
			err = mailSvc.SendApprovalRequest(ctx, &p.Booking)
		case tasks.EmailApprovalConfirmed:
			err = mailSvc.SendApprovalConfirmed(ctx, &p.Booking)
		case tasks.EmailDenialNotice:
			err = mailSvc.SendDenialNotice(ctx, &p.Booking)
		default:
			utils.GetLogger().Warn("worker: unknown email kind", zap.String("kind", p.Kind))
			return nil
		}

		if err != nil {
			utils.GetLogger().Error("worker: failed to send email",
				zap.String("kind", p.Kind), zap.String("bookingID", p.Booking.ID), zap.Error(err))
		}
		return err
	}
}

func handleDealStageTask(crmSvc crm.SyncService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.DealStagePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("worker: invalid deal stage payload", zap.Error(err))
			return err
		}

		var err error
		switch p.Status {
		case models.DealWon:
			err = crmSvc.MarkDealWon(ctx, p.DealID)
		case models.DealLost:
			err = crmSvc.MarkDealLost(ctx, p.DealID, p.CloseReason)
		default:
			utils.GetLogger().Warn("worker: unknown deal status", zap.String("status", p.Status))
			return nil
		}

		if err != nil {
			utils.GetLogger().Error("worker: failed to move deal stage",
				zap.String("dealID", p.DealID), zap.String("status", p.Status), zap.Error(err))
		}
		return err
	}
}
