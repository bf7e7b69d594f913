package leaveerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveDate = apperror.New(
		apperror.CodeValidation,
		"Leave Date must be a date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDepartment = apperror.New(
		apperror.CodeValidation,
		"Department is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeValidation,
		"Status must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveRequestID = apperror.New(
		apperror.CodeValidation,
		"Id is invalid",
		http.StatusBadRequest,
	)
	ErrManagerRequired = apperror.New(
		apperror.CodeValidation,
		"Manager Id is required",
		http.StatusBadRequest,
	)
	ErrManagerMismatch = apperror.New(
		apperror.CodeForbidden,
		"Manager Id does not match the signed-in manager",
		http.StatusForbidden,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager not found",
		http.StatusNotFound,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyProcessed = apperror.New(
		apperror.CodeConflict,
		"Leave request has already been processed",
		http.StatusConflict,
	)
)
