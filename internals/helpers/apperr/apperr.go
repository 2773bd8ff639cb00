package apperr

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Error is rendered by the HTTP error handler as the error envelope.
// Err is logged but never sent to the client.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

/* ===== constructors ===== */

// NotFound builds STUDENT_NOT_FOUND style errors from an entity label.
func NotFound(entity string) *Error {
	code := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(entity), " ", "_")) + "_NOT_FOUND"
	msg := strings.ToUpper(entity[:1]) + entity[1:] + " not found"
	return New(http.StatusNotFound, code, msg)
}

// Validation carries per-field messages keyed by json field name.
func Validation(fields map[string][]string) *Error {
	if fields == nil {
		fields = map[string][]string{}
	}
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidation,
		Message: "Validation failed",
		Details: fields,
	}
}

// Field is a shortcut for a single-field validation error.
func Field(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

// Rule is a 422 business rule violation.
func Rule(code, message string) *Error {
	return New(http.StatusUnprocessableEntity, code, message)
}

// Internal is a generic 500; the cause stays server side and carries the
// caller's stack for the error log.
func Internal(code, message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Err: errors.WithStack(err)}
}

/* ===== codes ===== */

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeClassHasStudents     = "CLASS_HAS_STUDENTS"
	CodeSubjectInUse         = "SUBJECT_IN_USE"
	CodeAlreadyEnrolled      = "STUDENT_ALREADY_ENROLLED"
	CodeClassFull            = "CLASS_FULL"
	CodeTeacherHasClasses    = "TEACHER_HAS_CLASSES"
	CodeTeacherPaymentExists = "TEACHER_PAYMENT_EXISTS"
	CodeCreate               = "CREATE_ERROR"
	CodeUpdate               = "UPDATE_ERROR"
	CodeDelete               = "DELETE_ERROR"
	CodeServer               = "SERVER_ERROR"
	CodeReport               = "REPORT_ERROR"
	CodeUpload               = "UPLOAD_ERROR"
	CodeImport               = "IMPORT_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
)

// As unwraps err into *Error.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// HasCode reports whether err is an *Error carrying code.
func HasCode(err error, code string) bool {
	ae, ok := As(err)
	return ok && ae.Code == code
}

// OrInternal keeps *Error values and wraps anything else as a 500 with the given code.
func OrInternal(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Internal(code, message, err)
}
