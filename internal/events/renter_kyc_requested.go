package events

import "time"

const RenterKYCRequestedTopic = "pm.renter.kyc.requested.v1"

type RenterKYCRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RenterUUID  string    `json:"renter_uuid"`
	AccountID   int64     `json:"account_id"`
	CompanyID   int64     `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
