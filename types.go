package authsession

import "time"

// ErrorDetail describes a failed backend operation in a form suitable for
// direct display. Transport and backend failures are reported this way
// rather than as Go errors so that a failed login and a rejected login look
// the same to callers.
type ErrorDetail struct {
	Title      string `json:"title,omitempty"`
	Type       string `json:"type,omitempty"`
	Cause      string `json:"cause,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// Response is the uniform envelope returned by every [Capability] operation.
// Success and Error are mutually exclusive; HTTPCode carries the backend
// status code when one was received.
type Response[T any] struct {
	Success  bool         `json:"success"`
	HTTPCode int          `json:"http_code,omitempty"`
	Data     T            `json:"data,omitempty"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// Succeed builds a successful [Response] carrying data.
func Succeed[T any](httpCode int, data T) Response[T] {
	return Response[T]{Success: true, HTTPCode: httpCode, Data: data}
}

// Fail builds a failed [Response] carrying an error detail.
func Fail[T any](httpCode int, detail *ErrorDetail) Response[T] {
	return Response[T]{Success: false, HTTPCode: httpCode, Error: detail}
}

// LoginParams are the credentials for a standard password login.
type LoginParams struct {
	Email    string
	Password string
}

// PinLoginParams are the credentials for a quick (PIN) login.
type PinLoginParams struct {
	User string
	Pin  string
}

// SendOTPParams requests a one-time passcode for the given mobile number.
// NewOTP forces a fresh passcode instead of reusing a previously issued one.
type SendOTPParams struct {
	Mobile string
	NewOTP bool
}

// SendOTPResponse reports the outcome of an OTP generation request.
type SendOTPResponse struct {
	Status string `json:"status"`
	Mobile string `json:"mobile,omitempty"`
}

// VerifyOTPParams verifies a passcode previously sent via SendOTP.
// LoginToUser additionally starts a session on successful verification.
type VerifyOTPParams struct {
	Mobile      string
	OTP         string
	LoginToUser bool
}

// VerifyOTPResponse reports the outcome of an OTP verification.
type VerifyOTPResponse struct {
	Status string `json:"status"`
	Mobile string `json:"mobile,omitempty"`
}

// ChangePasswordParams carries the old and new password for a password
// change of the currently logged-in user. The backend validates the old
// password before changing it.
type ChangePasswordParams struct {
	OldPassword string
	NewPassword string
}

// IdentifierType distinguishes the kind of user identifier supplied to the
// password-reset operations.
type IdentifierType string

const (
	// IdentifierEmail marks the identifier as an email address.
	IdentifierEmail IdentifierType = "email"
	// IdentifierMobile marks the identifier as a mobile number.
	IdentifierMobile IdentifierType = "mobile"
)

// OTPMedium is the channel on which a password-reset passcode is delivered.
type OTPMedium string

const (
	// MediumEmail delivers the passcode by email.
	MediumEmail OTPMedium = "email"
	// MediumSMS delivers the passcode by SMS.
	MediumSMS OTPMedium = "sms"
)

// PasswordResetInfoParams identify the account whose reset options are
// requested.
type PasswordResetInfoParams struct {
	Type IdentifierType
	ID   string
}

// ResetPasswordInfo lists the reset media available for an account together
// with masked hints (for example an obscured email address).
type ResetPasswordInfo struct {
	HasMedium bool                 `json:"has_medium"`
	Hints     map[OTPMedium]string `json:"hints,omitempty"`
}

// GenerateResetOTPParams is the first step of the password-reset flow: send
// a passcode to the chosen medium.
type GenerateResetOTPParams struct {
	ID       string
	IDType   IdentifierType
	Medium   OTPMedium
	MediumID string
}

// GenerateResetOTPResponse reports whether the reset passcode was sent.
type GenerateResetOTPResponse struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// VerifyResetOTPParams is the second step of the password-reset flow.
type VerifyResetOTPParams struct {
	OTP      string
	ID       string
	IDType   IdentifierType
	Medium   OTPMedium
	MediumID string
}

// VerifyResetOTPResponse carries the reset token issued on successful
// verification.
type VerifyResetOTPResponse struct {
	Verified   bool   `json:"verified"`
	ResetToken string `json:"reset_token,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// UpdatePasswordParams is the final step of the password-reset flow.
type UpdatePasswordParams struct {
	ResetToken  string
	NewPassword string
}

// UpdatePasswordResponse reports whether the password was updated.
type UpdatePasswordResponse struct {
	Updated bool   `json:"updated"`
	Reason  string `json:"reason,omitempty"`
}

// EstimatePasswordParams are the inputs to password-strength estimation.
// The optional personal fields penalize passwords derived from them.
type EstimatePasswordParams struct {
	Password    string
	FirstName   string
	LastName    string
	Email       string
	OtherInputs []string
}

// StrengthFeedback is advisory text to help a user choose a better
// password. Populated only for scores of 2 and below.
type StrengthFeedback struct {
	Warning     string   `json:"warning,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// PasswordStrength is the result of password-strength estimation.
//
// Score ranges 0-4:
//
//	0  too guessable: risky password (guesses < 10^3)
//	1  very guessable: protection from throttled online attacks (< 10^6)
//	2  somewhat guessable: protection from unthrottled online attacks (< 10^8)
//	3  safely unguessable: moderate offline slow-hash protection (< 10^10)
//	4  very unguessable: strong offline slow-hash protection (>= 10^10)
type PasswordStrength struct {
	Score            int              `json:"score"`
	Entropy          float64          `json:"entropy"`
	CrackTimeDisplay string           `json:"crack_time_display,omitempty"`
	Feedback         StrengthFeedback `json:"feedback"`
	CalcTime         time.Duration    `json:"calc_time"`
}
