package vendor

import "time"

type CreateVendorRequest struct {
	VendorCode            string `json:"vendor_code" binding:"required"`
	VendorName            string `json:"vendor_name" binding:"required"`
	VendorType            string `json:"vendor_type" binding:"required"`
	ContactName           string `json:"contact_name"`
	ContactEmail          string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone          string `json:"contact_phone"`
	City                  string `json:"city"`
	Country               string `json:"country"`
	BankName              string `json:"bank_name"`
	BankIBAN              string `json:"bank_iban"`
	TaxRegistrationNumber string `json:"tax_registration_number"`
	Notes                 string `json:"notes"`
}

type UpdateVendorRequest struct {
	VendorName            string `json:"vendor_name"`
	ContactName           string `json:"contact_name"`
	ContactEmail          string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone          string `json:"contact_phone"`
	City                  string `json:"city"`
	Country               string `json:"country"`
	BankName              string `json:"bank_name"`
	BankIBAN              string `json:"bank_iban"`
	TaxRegistrationNumber string `json:"tax_registration_number"`
	Status                string `json:"status"`
	Notes                 string `json:"notes"`
}

type VendorResponse struct {
	UUID                  string    `json:"uuid"`
	VendorCode            string    `json:"vendor_code"`
	VendorName            string    `json:"vendor_name"`
	VendorType            string    `json:"vendor_type"`
	ContactName           string    `json:"contact_name,omitempty"`
	ContactEmail          string    `json:"contact_email,omitempty"`
	ContactPhone          string    `json:"contact_phone,omitempty"`
	City                  string    `json:"city,omitempty"`
	Country               string    `json:"country,omitempty"`
	BankName              string    `json:"bank_name,omitempty"`
	BankIBAN              string    `json:"bank_iban,omitempty"`
	TaxRegistrationNumber string    `json:"tax_registration_number,omitempty"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"created_at"`
}
