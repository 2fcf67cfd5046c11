// Package events publishes timecard and employee lifecycle events.
package events

import (
	"context"

	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/pkg/logger"
	"github.com/wcac/timecards-backend/pkg/messaging"
)

// TimecardEventPublisher publishes timecard-related events. A nil publisher
// is valid and drops every event, so services work with messaging disabled.
type TimecardEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewTimecardEventPublisher creates a new timecard event publisher
func NewTimecardEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*TimecardEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTimecardEvents, "timecard-service", log)
	if err != nil {
		return nil, err
	}

	return &TimecardEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

func (p *TimecardEventPublisher) publish(ctx context.Context, eventType string, data interface{}, timecardID int64) {
	if p == nil || p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).
			Str("event_type", eventType).
			Int64("timecard_id", timecardID).
			Msg("failed to publish timecard event")
	}
}

// PublishTimecardCreated publishes a timecard created event
func (p *TimecardEventPublisher) PublishTimecardCreated(ctx context.Context, card *repository.Timecard) {
	p.publish(ctx, messaging.EventTimecardCreated, timecardEvent(card), card.ID)
}

// PublishTimecardUpdated publishes a timecard updated event
func (p *TimecardEventPublisher) PublishTimecardUpdated(ctx context.Context, card *repository.Timecard) {
	p.publish(ctx, messaging.EventTimecardUpdated, timecardEvent(card), card.ID)
}

// PublishTimecardSubmitted publishes a timecard submitted event
func (p *TimecardEventPublisher) PublishTimecardSubmitted(ctx context.Context, card *repository.Timecard) {
	p.publish(ctx, messaging.EventTimecardSubmitted, timecardEvent(card), card.ID)
}

// PublishTimecardDeleted publishes a timecard deleted event
func (p *TimecardEventPublisher) PublishTimecardDeleted(ctx context.Context, card *repository.Timecard) {
	p.publish(ctx, messaging.EventTimecardDeleted, timecardEvent(card), card.ID)
}

func timecardEvent(card *repository.Timecard) messaging.TimecardEvent {
	return messaging.TimecardEvent{
		TimecardID: card.ID,
		EmployeeID: card.EmployeeID,
		WorkDate:   card.WorkDate.Format("2006-01-02"),
		Status:     card.Status,
	}
}

// EmployeeEventPublisher publishes employee lifecycle events. Nil-safe like
// the timecard publisher.
type EmployeeEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewEmployeeEventPublisher creates a new employee event publisher
func NewEmployeeEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*EmployeeEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTimecardEvents, "timecard-service", log)
	if err != nil {
		return nil, err
	}

	return &EmployeeEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

func (p *EmployeeEventPublisher) publish(ctx context.Context, eventType string, data interface{}, employeeID int64) {
	if p == nil || p.publisher == nil {
		return
	}

	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).
			Str("event_type", eventType).
			Int64("employee_id", employeeID).
			Msg("failed to publish employee event")
	}
}

// PublishEmployeeCreated publishes an employee created event
func (p *EmployeeEventPublisher) PublishEmployeeCreated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeEvent{
		EmployeeID: emp.ID,
		Name:       emp.FirstName + " " + emp.LastName,
	}
	p.publish(ctx, messaging.EventEmployeeCreated, data, emp.ID)
}

// PublishEmployeeUpdated publishes an employee updated event
func (p *EmployeeEventPublisher) PublishEmployeeUpdated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeEvent{
		EmployeeID: emp.ID,
		Name:       emp.FirstName + " " + emp.LastName,
	}
	p.publish(ctx, messaging.EventEmployeeUpdated, data, emp.ID)
}

// PublishEmployeeDeleted publishes an employee deleted event
func (p *EmployeeEventPublisher) PublishEmployeeDeleted(ctx context.Context, employeeID int64) {
	p.publish(ctx, messaging.EventEmployeeDeleted, messaging.EmployeeEvent{EmployeeID: employeeID}, employeeID)
}
