package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInvalidUserID  = "INVALID_USER_ID"
	ErrCodeUserNotFound   = "USER_NOT_FOUND"
	ErrCodeEmailTaken     = "EMAIL_TAKEN"
	ErrCodeQuotaExceeded  = "QUOTA_EXCEEDED"
	ErrCodeUnauthorised   = "UNAUTHORIZED"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidRequest = NewDomainError(ErrCodeInvalidRequest, "Invalid request")
	ErrInvalidUserID  = NewDomainError(ErrCodeInvalidUserID, "Invalid user ID")
	ErrUserNotFound   = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrEmailTaken     = NewDomainError(ErrCodeEmailTaken, "A user with this email already exists")
	ErrQuotaExceeded  = NewDomainError(ErrCodeQuotaExceeded, "Daily scan limit reached. Upgrade to premium for unlimited scans.")
)
