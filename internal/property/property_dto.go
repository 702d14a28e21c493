package property

import "time"

type CreatePropertyRequest struct {
	PropertyCode string `json:"property_code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	UsageType    string `json:"usage_type" binding:"required"`
	AddressLine  string `json:"address_line"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type UpdatePropertyRequest struct {
	Name        string `json:"name"`
	UsageType   string `json:"usage_type"`
	Status      string `json:"status"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type PropertyResponse struct {
	UUID         string    `json:"uuid"`
	PropertyCode string    `json:"property_code"`
	Name         string    `json:"name"`
	UsageType    string    `json:"usage_type"`
	Status       string    `json:"status"`
	AddressLine  string    `json:"address_line,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PropertyOption struct {
	UUID         string `json:"uuid"`
	PropertyCode string `json:"property_code"`
	Name         string `json:"name"`
}

type CreateUnitRequest struct {
	UnitCode       string  `json:"unit_code" binding:"required"`
	ParentUnitUUID string  `json:"parent_unit_uuid"`
	Floor          string  `json:"floor"`
	AreaSqm        float64 `json:"area_sqm"`
}

type UpdateUnitRequest struct {
	Floor   string   `json:"floor"`
	AreaSqm *float64 `json:"area_sqm"`
	Status  string   `json:"status"`
}

type UnitResponse struct {
	UUID           string    `json:"uuid"`
	UnitCode       string    `json:"unit_code"`
	ParentUnitUUID string    `json:"parent_unit_uuid,omitempty"`
	Floor          string    `json:"floor,omitempty"`
	AreaSqm        float64   `json:"area_sqm,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
