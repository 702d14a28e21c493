package account

import "time"

type OnboardRequest struct {
	AccountName   string `json:"account_name" binding:"required"`
	CompanyName   string `json:"company_name" binding:"required"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required,min=8"`
	AdminFullName string `json:"admin_full_name" binding:"required"`
}

type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	LegalName string `json:"legal_name"`
}

type UpdateCompanyRequest struct {
	Name      string `json:"name"`
	LegalName string `json:"legal_name"`
	Status    string `json:"status"`
}

type AccountResponse struct {
	UUID      string            `json:"uuid"`
	Name      string            `json:"name"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Companies []CompanyResponse `json:"companies,omitempty"`
}

type CompanyResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	LegalName string    `json:"legal_name,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type OnboardResponse struct {
	Account   AccountResponse `json:"account"`
	Company   CompanyResponse `json:"company"`
	AdminUUID string          `json:"admin_uuid"`
}
