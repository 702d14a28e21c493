package renter

import "time"

type CreateRenterRequest struct {
	RenterCode  string `json:"renter_code" binding:"required"`
	RenterType  string `json:"renter_type" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	EntityName  string `json:"entity_name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
	Notes       string `json:"notes"`
}

type UpdateRenterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	EntityName  string `json:"entity_name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

type BlacklistRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RenterResponse struct {
	UUID        string     `json:"uuid"`
	RenterCode  string     `json:"renter_code"`
	RenterType  string     `json:"renter_type"`
	DisplayName string     `json:"display_name"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	EntityName  string     `json:"entity_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Nationality string     `json:"nationality,omitempty"`
	KYCStatus   string     `json:"kyc_status"`
	Status      string     `json:"status"`
	Blacklist   *Blacklist `json:"blacklist,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Blacklist struct {
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

type AddContactRequest struct {
	ContactName string `json:"contact_name" binding:"required"`
	Role        string `json:"role"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	IsPrimary   bool   `json:"is_primary"`
}

type UpdateContactRequest struct {
	ContactName string `json:"contact_name"`
	Role        string `json:"role"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	IsPrimary   *bool  `json:"is_primary"`
}

type ContactResponse struct {
	UUID        string    `json:"uuid"`
	ContactName string    `json:"contact_name"`
	Role        string    `json:"role,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	CreatedAt   time.Time `json:"created_at"`
}

type AddDocumentRequest struct {
	DocumentType   string     `json:"document_type" binding:"required"`
	DocumentNumber string     `json:"document_number"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	IssuingCountry string     `json:"issuing_country"`
	FileReference  string     `json:"file_reference"`
	FileName       string     `json:"file_name"`
}

type RejectDocumentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DocumentResponse struct {
	UUID               string     `json:"uuid"`
	DocumentType       string     `json:"document_type"`
	DocumentNumber     string     `json:"document_number,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	IssuingCountry     string     `json:"issuing_country,omitempty"`
	FileName           string     `json:"file_name,omitempty"`
	VerificationStatus string     `json:"verification_status"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	Mandatory          bool       `json:"mandatory"`
	CreatedAt          time.Time  `json:"created_at"`
}
