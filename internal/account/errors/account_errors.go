package accounterrors

import (
	"net/http"

	"proryx/internal/shared/apperror"
)

var (
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"Account not found",
		http.StatusNotFound,
	)

	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrAccountSuspended = apperror.New(
		apperror.CodeForbidden,
		"Account is suspended",
		http.StatusForbidden,
	)

	ErrCompanyNameTaken = apperror.New(
		apperror.CodeConflict,
		"A company with this name already exists under the account",
		http.StatusConflict,
	)

	ErrInvalidAccountID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid account ID",
		http.StatusBadRequest,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
