package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTimecardCreated   = "timecards.timecard.created"
	EventTimecardUpdated   = "timecards.timecard.updated"
	EventTimecardDeleted   = "timecards.timecard.deleted"
	EventTimecardSubmitted = "timecards.timecard.submitted"

	EventEmployeeCreated = "timecards.employee.created"
	EventEmployeeUpdated = "timecards.employee.updated"
	EventEmployeeDeleted = "timecards.employee.deleted"
)

// Exchange names
const (
	ExchangeTimecardEvents = "timecards.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          payload,
	}, nil
}

// TimecardEvent is the payload for timecard lifecycle events
type TimecardEvent struct {
	TimecardID int64  `json:"timecard_id"`
	EmployeeID int64  `json:"employee_id"`
	WorkDate   string `json:"work_date"`
	Status     string `json:"status,omitempty"`
}

// EmployeeEvent is the payload for employee lifecycle events
type EmployeeEvent struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name,omitempty"`
}
