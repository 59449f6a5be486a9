package user

// Stable error codes returned to clients.
const (
	ErrCodeInvalidCredentials = "USR001" // login failed, wording never reveals which part
	ErrCodeEmailTaken         = "USR002"
	ErrCodeUsernameTaken      = "USR003"
	ErrCodeNotFound           = "USR004"
	ErrCodeValidation         = "USR005"
	ErrCodeInvalidToken       = "USR006" // refresh token rejected
)
