package events

import "time"

const RenterCreatedTopic = "pm.renter.lifecycle.v1"

// RenterCreatedEvent crosses process boundaries, so it carries the
// tenant pair explicitly. Consumers rebuild their tenant context from
// it, never from anything ambient.
type RenterCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RenterUUID string    `json:"renter_uuid"`
	AccountID  int64     `json:"account_id"`
	CompanyID  int64     `json:"company_id"`
	RenterType string    `json:"renter_type"`
	OccurredAt time.Time `json:"occurred_at"`
}
