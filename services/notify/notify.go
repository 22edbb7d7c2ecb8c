// Package notify fans booking lifecycle events out to the best-effort side
// effects: emails and sales-pipeline stage moves. Everything here is
// fire-and-forget — a failed enqueue is logged and swallowed, never
// surfaced to the caller, because no side effect may block or reverse the
// primary state transition that triggered it.
package notify

import (
	"studiobook/config"
	"studiobook/models"
	"studiobook/services/tasks"
	"studiobook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher publishes booking lifecycle events.
type Dispatcher interface {
	BookingRequested(booking *models.Booking)
	BookingApproved(booking *models.Booking)
	BookingDenied(booking *models.Booking)
}

// AsynqDispatcher queues side effects onto the Redis-backed task queue
// consumed by the background worker.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher constructs a dispatcher over the configured Redis.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	})
	return &AsynqDispatcher{client: client}
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

func (d *AsynqDispatcher) enqueueEmail(kind string, booking *models.Booking) {
	task, err := tasks.NewEmailTask(kind, *booking)
	if err != nil {
		utils.GetLogger().Error("notify: failed to build email task",
			zap.String("kind", kind), zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		utils.GetLogger().Error("notify: failed to enqueue email task",
			zap.String("kind", kind), zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

func (d *AsynqDispatcher) enqueueDealStage(booking *models.Booking, status, reason string) {
	if booking.CadenceDealID == "" {
		return
	}
	task, err := tasks.NewDealStageTask(booking.CadenceDealID, status, reason)
	if err != nil {
		utils.GetLogger().Error("notify: failed to build deal stage task",
			zap.String("dealID", booking.CadenceDealID), zap.Error(err))
		return
	}
	if _, err := d.client.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		utils.GetLogger().Error("notify: failed to enqueue deal stage task",
			zap.String("dealID", booking.CadenceDealID), zap.Error(err))
	}
}

// BookingRequested notifies the requester and asks the photographer to
// approve or deny.
func (d *AsynqDispatcher) BookingRequested(booking *models.Booking) {
	d.enqueueEmail(tasks.EmailBookingReceived, booking)
	d.enqueueEmail(tasks.EmailApprovalRequest, booking)
}

// BookingApproved confirms to both parties and moves the deal to won.
func (d *AsynqDispatcher) BookingApproved(booking *models.Booking) {
	d.enqueueEmail(tasks.EmailApprovalConfirmed, booking)
	d.enqueueDealStage(booking, models.DealWon, "")
}

// BookingDenied notifies the requester and moves the deal to lost.
func (d *AsynqDispatcher) BookingDenied(booking *models.Booking) {
	d.enqueueEmail(tasks.EmailDenialNotice, booking)
	d.enqueueDealStage(booking, models.DealLost, "Declined from portfolio site")
}
