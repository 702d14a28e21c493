package propertyerrors

import (
	"net/http"

	"proryx/internal/shared/apperror"
)

var (
	ErrPropertyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Property not found",
		http.StatusNotFound,
	)

	ErrUnitNotFound = apperror.New(
		apperror.CodeNotFound,
		"Unit not found",
		http.StatusNotFound,
	)

	ErrPropertyCodeTaken = apperror.New(
		apperror.CodeConflict,
		"A property with this code already exists",
		http.StatusConflict,
	)

	ErrUnitCodeTaken = apperror.New(
		apperror.CodeConflict,
		"A unit with this code already exists in the property",
		http.StatusConflict,
	)

	ErrInvalidPropertyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid property ID",
		http.StatusBadRequest,
	)

	ErrInvalidUnitID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid unit ID",
		http.StatusBadRequest,
	)

	ErrInvalidUsageType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown usage type",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown status",
		http.StatusBadRequest,
	)

	ErrParentUnitNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Parent unit does not exist in this property",
		http.StatusBadRequest,
	)

	ErrPropertyHasUnits = apperror.New(
		apperror.CodeInvalidState,
		"Property still has units attached",
		http.StatusConflict,
	)
)
