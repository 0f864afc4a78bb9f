package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries an internal code, a log message and a user-facing
// message. UserMessage is what ends up in the HTTP error envelope.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	HTTPStatus  int
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// WithUserMessage returns a copy carrying a different user-facing message.
func (e *AppError) WithUserMessage(msg string) *AppError {
	if e == nil {
		return nil
	}

	clone := *e
	clone.UserMessage = msg

	return &clone
}

// WithHTTPStatus returns a copy carrying a different HTTP status. Some
// routes report the same failure with a different status (a bad code is a
// 400 on validate but a 404 on status lookup).
func (e *AppError) WithHTTPStatus(status int) *AppError {
	if e == nil {
		return nil
	}

	clone := *e
	clone.HTTPStatus = status

	return &clone
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: msg,
		Severity:    SeverityLow,
		Retryable:   false,
		HTTPStatus:  400,
		cause:       nil,
	}
}

func NewDuplicateError() *AppError {
	return &AppError{
		Code:        "E110",
		Message:     "registration conflicts with an existing email or telegram",
		UserMessage: "Email ou Telegram já cadastrado",
		Severity:    SeverityLow,
		Retryable:   false,
		HTTPStatus:  400,
		cause:       nil,
	}
}

func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:        "E120",
		Message:     fmt.Sprintf("%s not found", what),
		UserMessage: "Código de acesso inválido",
		Severity:    SeverityLow,
		Retryable:   false,
		HTTPStatus:  404,
		cause:       nil,
	}
}

func NewUnauthorizedError() *AppError {
	return &AppError{
		Code:        "E130",
		Message:     "invalid credentials or token",
		UserMessage: "Credenciais inválidas",
		Severity:    SeverityLow,
		Retryable:   false,
		HTTPStatus:  401,
		cause:       nil,
	}
}

func NewInsufficientBalanceError(asset string) *AppError {
	return &AppError{
		Code:        "E140",
		Message:     fmt.Sprintf("insufficient balance of %s", asset),
		UserMessage: fmt.Sprintf("Saldo insuficiente de %s", asset),
		Severity:    SeverityLow,
		Retryable:   false,
		HTTPStatus:  400,
		cause:       nil,
	}
}

func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("database error: %s", underlyingMsg),
		UserMessage: "Problema temporário, tente novamente mais tarde",
		Severity:    SeverityHigh,
		Retryable:   true,
		HTTPStatus:  500,
		cause:       cause,
	}
}

func NewExternalAPIError(apiName string, cause error) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("external API error: %s", apiName),
		UserMessage: "Serviço temporariamente indisponível",
		Severity:    SeverityMedium,
		Retryable:   true,
		HTTPStatus:  502,
		cause:       cause,
	}
}

// NewEmailDeliveryError marks a failed send. Delivery failures never roll
// back a registration; callers downgrade this to emailSent:false.
func NewEmailDeliveryError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E310",
		Message:     fmt.Sprintf("email delivery failed: %s", underlyingMsg),
		UserMessage: "Falha ao enviar email",
		Severity:    SeverityMedium,
		Retryable:   true,
		HTTPStatus:  500,
		cause:       cause,
	}
}
