// file: internals/features/finance/payments/model/gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  gateway_events = LOG WEBHOOK / CALLBACK PAYMENT GATEWAY.
  - Nyimpen raw headers, payload, signature, status processing.
  - Unique (external_id, outcome) = guard replay: notifikasi yang sama
    (at-least-once delivery dari gateway) cuma diterapkan sekali.
*/

type GatewayEventStatus string

const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
)

type GatewayEvent struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"gateway_event_id"`

	GatewayEventSessionID *uuid.UUID `gorm:"column:gateway_event_session_id;type:uuid;index" json:"gateway_event_session_id,omitempty"`

	GatewayEventProvider   string `gorm:"column:gateway_event_provider;type:varchar(20);not null" json:"gateway_event_provider"`
	GatewayEventExternalID string `gorm:"column:gateway_event_external_id;type:varchar(64);not null;uniqueIndex:uniq_gateway_event_applied,priority:1" json:"gateway_event_external_id"`

	// outcome yang diterapkan: settled | failed | expired
	GatewayEventOutcome string `gorm:"column:gateway_event_outcome;type:varchar(20);not null;uniqueIndex:uniq_gateway_event_applied,priority:2" json:"gateway_event_outcome"`

	GatewayEventHeaders   datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers,omitempty"`
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload,omitempty"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature,omitempty"`

	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEvent) TableName() string { return "gateway_events" }
