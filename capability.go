package authsession

import "context"

// Capability is the contract a backend integration implements. Every
// operation returns the uniform [Response] envelope: transport and backend
// failures are reported inside it, never as panics, so callers handle a
// rejected login and an unreachable backend the same way. Cancellation and
// timeouts are delegated to the underlying request layer through ctx.
type Capability interface {
	// CheckLogin verifies the current session against the backend.
	CheckLogin(ctx context.Context) Response[SessionStatusInfo]
	// Login authenticates with email and password.
	Login(ctx context.Context, params LoginParams) Response[SessionStatusInfo]
	// PinLogin authenticates with a user and quick-login PIN.
	PinLogin(ctx context.Context, params PinLoginParams) Response[SessionStatusInfo]
	// SendOTP generates and delivers a one-time passcode.
	SendOTP(ctx context.Context, params SendOTPParams) Response[SendOTPResponse]
	// VerifyOTP checks a passcode and optionally starts a session.
	VerifyOTP(ctx context.Context, params VerifyOTPParams) Response[VerifyOTPResponse]
	// Logout ends the current session.
	Logout(ctx context.Context) Response[struct{}]
	// SetSessionStatusInfo seeds the session from outside, useful when the
	// session was established elsewhere (for example on a server).
	SetSessionStatusInfo(ctx context.Context, info SessionStatusInfo) Response[struct{}]
	// GetCurrentUserRoles returns the roles of the logged-in user.
	GetCurrentUserRoles(ctx context.Context) Response[[]string]
	// SetUserLanguage stores the user's language on the backend.
	SetUserLanguage(ctx context.Context, lang string) Response[bool]
	// ChangePassword changes the password of the logged-in user after
	// validating the old one.
	ChangePassword(ctx context.Context, params ChangePasswordParams) Response[bool]

	// GetPasswordResetInfo lists the reset media available for an account.
	GetPasswordResetInfo(ctx context.Context, params PasswordResetInfoParams) Response[ResetPasswordInfo]
	// GeneratePasswordResetOTP sends a reset passcode (step one).
	GeneratePasswordResetOTP(ctx context.Context, params GenerateResetOTPParams) Response[GenerateResetOTPResponse]
	// VerifyPasswordResetOTP verifies the passcode (step two).
	VerifyPasswordResetOTP(ctx context.Context, params VerifyResetOTPParams) Response[VerifyResetOTPResponse]
	// UpdatePasswordWithToken sets the new password (final step).
	UpdatePasswordWithToken(ctx context.Context, params UpdatePasswordParams) Response[UpdatePasswordResponse]

	// EstimatePassword scores a candidate password 0-4 with advisory
	// feedback. Purely local; see [EstimatePassword] for a ready-made
	// implementation.
	EstimatePassword(params EstimatePasswordParams) PasswordStrength
}

// SetCapability binds the backend integration the deprecated shims forward
// to.
func (c *Controller) SetCapability(capability Capability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.capability = capability
}

func (c *Controller) boundCapability() Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capability
}

// SMSLoginGeneratePIN requests an SMS login passcode.
//
// Deprecated: use [Capability.SendOTP] instead.
func (c *Controller) SMSLoginGeneratePIN(ctx context.Context, mobile string, newPIN bool) Response[SendOTPResponse] {
	c.log.Warn("SMSLoginGeneratePIN is deprecated, use SendOTP instead")
	capability := c.boundCapability()
	if capability == nil {
		return Fail[SendOTPResponse](0, &ErrorDetail{
			Title: "No backend integration",
			Cause: ErrNoCapability.Error(),
		})
	}
	return capability.SendOTP(ctx, SendOTPParams{Mobile: mobile, NewOTP: newPIN})
}

// SMSLoginVerifyPIN confirms an SMS login passcode.
//
// Deprecated: use [Capability.VerifyOTP] instead.
func (c *Controller) SMSLoginVerifyPIN(ctx context.Context, mobile, pin string, loginToUser bool) Response[VerifyOTPResponse] {
	c.log.Warn("SMSLoginVerifyPIN is deprecated, use VerifyOTP instead")
	capability := c.boundCapability()
	if capability == nil {
		return Fail[VerifyOTPResponse](0, &ErrorDetail{
			Title: "No backend integration",
			Cause: ErrNoCapability.Error(),
		})
	}
	return capability.VerifyOTP(ctx, VerifyOTPParams{
		Mobile:      mobile,
		OTP:         pin,
		LoginToUser: loginToUser,
	})
}
