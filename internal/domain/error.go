package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	ECONFLICT     = "conflict"       // 409 - Conflicting in-flight operation
	EINTERNAL     = "internal"       // 500 - Internal error (hide details)
	EINVALID      = "invalid"        // 400/422 - Validation or business-rule rejection
	ENOTFOUND     = "not_found"      // 404 - Resource not found
	EUNAUTHORIZED = "unauthorized"   // 401 - Authentication required
	EUNAVAILABLE  = "unavailable"    // 503 - Upstream failure, retryable
	EPAYMENT      = "payment_failed" // 402 - Payment session could not start
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ENOTFOUND).
	Code string

	// Message is a human-readable error message safe to show to users.
	Message string

	// Op is the operation where the error occurred (e.g., "checkout.submit").
	// Used for debugging and logging, not shown to users.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by identity or by code+message, so sentinel
// errors survive WrapError and errors.Is checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t == e || (t.Code == e.Code && t.Message == e.Message)
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a user-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "An internal error occurred. Please try again later."
		}
		return e.Message
	}

	return "An internal error occurred. Please try again later."
}

// Errorf creates a new domain error with formatted message.
// Example: domain.Errorf(domain.EINVALID, "cart.add", "invalid quantity: %d", qty)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain error code and operation.
// Preserves the underlying error for logging while providing structure.
// Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// Checkout-core sentinel errors. Callers distinguish these with errors.Is;
// none of them may leave a checkout session in an undefined state.
var (
	// ErrNoPurchasableVariant means the product exists but has no variants.
	// Terminal for that product, not retryable.
	ErrNoPurchasableVariant = &Error{Code: ENOTFOUND, Message: "No purchase options available for this product"}

	// ErrVariantFetchFailed means the catalog could not be reached. Retryable.
	ErrVariantFetchFailed = &Error{Code: EUNAVAILABLE, Message: "Could not load product options. Please try again."}

	// ErrNotServiceable is a business-rule rejection, not a system failure.
	ErrNotServiceable = &Error{Code: EINVALID, Message: "We do not deliver to this location yet"}

	// ErrOrderCreationIncomplete means the order service answered success but
	// omitted required fields. Treated as a failure; the user may retry.
	ErrOrderCreationIncomplete = &Error{Code: EINTERNAL, Message: "Order could not be confirmed. Please try again."}

	// ErrPaymentSessionUnavailable means the gateway handoff could not start.
	ErrPaymentSessionUnavailable = &Error{Code: EPAYMENT, Message: "Payment could not be started. Please try again."}

	// ErrReconciliationMiss means the gateway order id has no local mapping.
	// Handlers degrade to a "view your orders" response, never an error page.
	ErrReconciliationMiss = &Error{Code: ENOTFOUND, Message: "We could not match this payment to an order on this device"}

	// ErrSubmitInFlight guards against duplicate order creation from
	// double-clicks; exactly one order-service call per user action.
	ErrSubmitInFlight = &Error{Code: ECONFLICT, Message: "Your order is already being placed"}

	// ErrLineNotFound is returned for mutations against an unknown cart line.
	ErrLineNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}

	// ErrInvalidQuantity rejects non-positive quantities client-side.
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}

	// ErrAddressNotFound is returned when selecting or deleting an unknown address.
	ErrAddressNotFound = &Error{Code: ENOTFOUND, Message: "Address not found"}
)

// =============================================================================
// Validation Errors (field-level errors for forms)
// =============================================================================

// ValidationError represents one or more field validation failures.
// These are resolved entirely within the form layer and never bubble
// to the checkout coordinator.
type ValidationError struct {
	// Fields maps field names to error messages.
	Fields map[string]string

	// Op is the operation where validation failed.
	Op string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			if e.Op != "" {
				return fmt.Sprintf("%s: %s: %s", e.Op, field, msg)
			}
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: validation failed for %d fields", e.Op, len(e.Fields))
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{
		Op:     op,
		Fields: map[string]string{field: message},
	}
}

// AddFieldError adds a field error to an existing ValidationError.
// If err is nil or not a ValidationError, creates a new one with the field.
func AddFieldError(err error, field, message string) error {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		ve.Fields[field] = message
		return ve
	}

	return &ValidationError{
		Fields: map[string]string{field: message},
	}
}

// IsValidationError returns true if err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields extracts field errors from a ValidationError.
// Returns nil if err is not a ValidationError.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
