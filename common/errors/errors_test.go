package errors

import (
	"net/http"
	"reflect"
	"testing"
)

func TestEcoSenseError_Error(t *testing.T) {
	type fields struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name: "errorType and message is filled out", fields: fields{errorType: ErrorTypeConflict, message: "error message"}, want: "error message",
		},
		{
			name: "message is empty", fields: fields{errorType: ErrorTypeConflict, message: ""}, want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CommonEcoSenseError{
				errorType: tt.fields.errorType,
				message:   tt.fields.message,
			}
			if got := e.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewEcoSenseError(t *testing.T) {
	type args struct {
		errorType ErrorType
		message   string
	}
	tests := []struct {
		name string
		args args
		want CommonEcoSenseError
	}{
		{
			name: "error type and message are filled out",
			args: args{errorType: ErrorTypeConflict, message: "error message"},
			want: CommonEcoSenseError{errorType: ErrorTypeConflict, message: "error message"},
		},
		{
			name: "message is empty",
			args: args{errorType: ErrorTypeConflict, message: ""},
			want: CommonEcoSenseError{errorType: ErrorTypeConflict, message: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCommonEcoSenseError(tt.args.errorType, tt.args.message); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewCommonEcoSenseError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEcoSenseError_IsErrorType(t *testing.T) {
	err := NewCommonEcoSenseError(ErrorTypeBadRequest, "bad input")
	if !err.IsErrorType(ErrorTypeBadRequest) {
		t.Errorf("IsErrorType(ErrorTypeBadRequest) = false, want true")
	}
	if err.IsErrorType(ErrorTypeNotFound) {
		t.Errorf("IsErrorType(ErrorTypeNotFound) = true, want false")
	}
}

func TestEcoSenseError_ConvertToHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		wantCode  int
	}{
		{"bad request", ErrorTypeBadRequest, http.StatusBadRequest},
		{"mandatory", ErrorTypeMandatory, http.StatusBadRequest},
		{"not found", ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", ErrorTypeConflict, http.StatusConflict},
		{"db error", ErrorTypeDBError, http.StatusInternalServerError},
		{"unauthorized", ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"unknown", ErrorTypeUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := NewCommonEcoSenseError(tt.errorType, "msg").ConvertToHTTPError()
			if httpErr.Code != tt.wantCode {
				t.Errorf("ConvertToHTTPError().Code = %v, want %v", httpErr.Code, tt.wantCode)
			}
		})
	}
}
