package rentererrors

import (
	"net/http"

	"proryx/internal/shared/apperror"
)

var (
	ErrRenterNotFound = apperror.New(
		apperror.CodeNotFound,
		"Renter not found",
		http.StatusNotFound,
	)

	ErrContactNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contact not found",
		http.StatusNotFound,
	)

	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrRenterCodeTaken = apperror.New(
		apperror.CodeConflict,
		"A renter with this code already exists",
		http.StatusConflict,
	)

	ErrInvalidRenterID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid renter ID",
		http.StatusBadRequest,
	)

	ErrInvalidContactID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid contact ID",
		http.StatusBadRequest,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrInvalidRenterType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown renter type",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown status",
		http.StatusBadRequest,
	)

	ErrUnknownDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown document type",
		http.StatusBadRequest,
	)

	ErrDocumentTypeNotApplicable = apperror.New(
		apperror.CodeInvalidInput,
		"Document type is not applicable to this renter type",
		http.StatusBadRequest,
	)

	ErrDocumentNotReviewable = apperror.New(
		apperror.CodeInvalidState,
		"Document is not awaiting review",
		http.StatusConflict,
	)

	ErrAlreadyBlacklisted = apperror.New(
		apperror.CodeInvalidState,
		"Renter is already blacklisted",
		http.StatusConflict,
	)

	ErrNotBlacklisted = apperror.New(
		apperror.CodeInvalidState,
		"Renter is not blacklisted",
		http.StatusConflict,
	)

	ErrBlacklistReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A blacklist reason is required",
		http.StatusBadRequest,
	)
)
