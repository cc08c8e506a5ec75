/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorType string

const (
	ErrorTypeNotFound    ErrorType = "NotFound"
	ErrorTypeServerError ErrorType = "ServerError"
	ErrorTypeDBError     ErrorType = "DBError"
	ErrorTypeConflict    ErrorType = "Conflict"
	// ErrorTypeBadRequest covers caller contract violations: malformed sensors,
	// unparseable windows. Out-of-order timestamps are corrected, not rejected.
	ErrorTypeBadRequest            ErrorType = "BadRequest"
	ErrorTypeMandatory             ErrorType = "Mandatory"
	ErrorTypeUnknown               ErrorType = "Unknown"
	ErrorTypeConfig                ErrorType = "ConfigurationError"
	MaxLimitExceeded               ErrorType = "MaxLimitExceeded"
	ErrorTypeUnauthorized          ErrorType = "Unauthorized"
	ErrorTypeRequestEntityTooLarge ErrorType = "RequestEntityTooLarge"
)

type CommonEcoSenseError struct {
	errorType ErrorType
	message   string
}

type EcoSenseError interface {
	ErrorType() ErrorType
	Message() string
	IsErrorType(errorType ErrorType) bool
	Error() string
	ConvertToHTTPError() *echo.HTTPError
}

func (e CommonEcoSenseError) ErrorType() ErrorType {
	return e.errorType
}

func (e CommonEcoSenseError) Message() string {
	return e.message
}

func (e CommonEcoSenseError) Error() string {
	return e.message
}

func (e CommonEcoSenseError) IsErrorType(errorType ErrorType) bool {
	return errorType == e.errorType
}

func (e CommonEcoSenseError) ConvertToHTTPError() *echo.HTTPError {
	return echo.NewHTTPError(errorTypeToCode(e.ErrorType()), e.Message())
}

func NewCommonEcoSenseError(errorType ErrorType, message string) CommonEcoSenseError {
	return CommonEcoSenseError{errorType, message}
}

func errorTypeToCode(status ErrorType) int {
	switch status {
	case ErrorTypeServerError:
		return http.StatusInternalServerError
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeBadRequest, ErrorTypeMandatory:
		return http.StatusBadRequest
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeDBError, ErrorTypeUnknown, MaxLimitExceeded:
		return http.StatusInternalServerError
	case ErrorTypeRequestEntityTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
