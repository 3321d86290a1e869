package services

// Stable machine-readable error codes returned alongside every failed
// mutation. The UI layer keys its messaging off these.
const (
	CodeUnauthorized              = "UNAUTHORIZED"
	CodeForbidden                 = "FORBIDDEN"
	CodeNotFound                  = "NOT_FOUND"
	CodeValidationError           = "VALIDATION_ERROR"
	CodeInvalidRequest            = "INVALID_REQUEST"
	CodeInvalidStatus             = "INVALID_STATUS"
	CodeDuplicatePaymentReference = "DUPLICATE_PAYMENT_REFERENCE"
	CodeDuplicateConfirmation     = "DUPLICATE_CONFIRMATION"
	CodeInternalError             = "INTERNAL_ERROR"
)

// ServiceError is a domain error with a stable code. Controllers map codes
// to HTTP statuses at the boundary; nothing here is transport-aware.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

// HTTPStatus maps an error code to the HTTP status controllers respond with.
func (e *ServiceError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthorized:
		return 401
	case CodeForbidden:
		return 403
	case CodeNotFound:
		return 404
	case CodeValidationError, CodeInvalidRequest:
		return 400
	case CodeInvalidStatus, CodeDuplicatePaymentReference, CodeDuplicateConfirmation:
		return 409
	default:
		return 500
	}
}
