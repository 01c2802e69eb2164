package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePostCreated     = "post.created"
	EventTypePostUpdated     = "post.updated"
	EventTypePostDeleted     = "post.deleted"
	EventTypeCommentCreated  = "comment.created"
	EventTypeCommentUpdated  = "comment.updated"
	EventTypeCommentDeleted  = "comment.deleted"
	EventTypeEmployeeCreated = "employee.created"
	EventTypeEmployeeUpdated = "employee.updated"
	EventTypeEmployeeDeleted = "employee.deleted"
)

// BoardEventTypes lists every event the board services publish.
var BoardEventTypes = []string{
	EventTypePostCreated,
	EventTypePostUpdated,
	EventTypePostDeleted,
	EventTypeCommentCreated,
	EventTypeCommentUpdated,
	EventTypeCommentDeleted,
	EventTypeEmployeeCreated,
	EventTypeEmployeeUpdated,
	EventTypeEmployeeDeleted,
}

// BoardEvent records a mutation of a board resource. Actor is empty for
// anonymous rows.
type BoardEvent struct {
	BaseEvent
	ResourceID string `json:"resource_id"`
	Actor      string `json:"actor,omitempty"`
}

func NewBoardEvent(eventType, resourceID, actor string, data map[string]interface{}) *BoardEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["resource_id"] = resourceID
	if actor != "" {
		data["actor"] = actor
	}
	return &BoardEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      data,
		},
		ResourceID: resourceID,
		Actor:      actor,
	}
}

// AuditLogger returns a handler that writes every event it receives to logger.
func AuditLogger(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
		}
		if be, ok := event.(*BoardEvent); ok {
			attrs = append(attrs, "resource_id", be.ResourceID)
			if be.Actor != "" {
				attrs = append(attrs, "actor", be.Actor)
			}
		}
		logger.InfoContext(ctx, "audit", attrs...)
		return nil
	}
}

// SubscribeAudit wires AuditLogger to every board event type.
func SubscribeAudit(bus *EventBus, logger *slog.Logger) {
	handler := AuditLogger(logger)
	for _, eventType := range BoardEventTypes {
		bus.Subscribe(eventType, handler)
	}
}

// Emit publishes event when publisher is set. Publish errors are logged by the bus.
func Emit(ctx context.Context, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}
	_ = publisher.Publish(ctx, event)
}
