package events

import "time"

const (
	SettlementGeneratedTopic           = "hr.settlement.generated.v1"
	SettlementPaidTopic                = "hr.settlement.paid.v1"
	SettlementOverriddenTopic          = "hr.settlement.overridden.v1"
	SettlementGenerationRequestedTopic = "hr.settlement.generation.requested.v1"
)

type SettlementGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	Period     string    `json:"period"`
	Category   string    `json:"category"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SettlementPaidEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	CompanyID    string    `json:"company_id"`
	SettlementID string    `json:"settlement_id"`
	FinalAmount  int64     `json:"final_amount"`
	PaidAt       time.Time `json:"paid_at"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type SettlementOverriddenEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	CompanyID     string    `json:"company_id"`
	SettlementID  string    `json:"settlement_id"`
	ActorID       string    `json:"actor_id,omitempty"`
	Base          int64     `json:"base"`
	Deduction     int64     `json:"deduction"`
	Final         int64     `json:"final"`
	PreviousFinal int64     `json:"previous_final"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// SettlementGenerationRequestedEvent asks the consumer to run generation.
// An empty Category means every category.
type SettlementGenerationRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	CompanyID   string    `json:"company_id"`
	Period      string    `json:"period"`
	Category    string    `json:"category,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
