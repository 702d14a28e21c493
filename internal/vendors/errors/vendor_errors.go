package vendorerrors

import (
	"net/http"

	"proryx/internal/shared/apperror"
)

var (
	ErrVendorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vendor not found",
		http.StatusNotFound,
	)

	ErrVendorCodeTaken = apperror.New(
		apperror.CodeConflict,
		"A vendor with this code already exists",
		http.StatusConflict,
	)

	ErrInvalidVendorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid vendor ID",
		http.StatusBadRequest,
	)

	ErrInvalidVendorType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown vendor type",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown status",
		http.StatusBadRequest,
	)
)
