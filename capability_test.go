package authsession

import (
	"context"
	"testing"
)

// recordingCapability satisfies Capability and records the OTP calls the
// deprecated shims are expected to forward to.
type recordingCapability struct {
	sendOTP   []SendOTPParams
	verifyOTP []VerifyOTPParams
}

func (r *recordingCapability) CheckLogin(context.Context) Response[SessionStatusInfo] {
	return Succeed(200, SessionStatusInfo{})
}

func (r *recordingCapability) Login(context.Context, LoginParams) Response[SessionStatusInfo] {
	return Succeed(200, SessionStatusInfo{})
}

func (r *recordingCapability) PinLogin(context.Context, PinLoginParams) Response[SessionStatusInfo] {
	return Succeed(200, SessionStatusInfo{})
}

func (r *recordingCapability) SendOTP(_ context.Context, params SendOTPParams) Response[SendOTPResponse] {
	r.sendOTP = append(r.sendOTP, params)
	return Succeed(200, SendOTPResponse{Status: "success", Mobile: params.Mobile})
}

func (r *recordingCapability) VerifyOTP(_ context.Context, params VerifyOTPParams) Response[VerifyOTPResponse] {
	r.verifyOTP = append(r.verifyOTP, params)
	return Succeed(200, VerifyOTPResponse{Status: "verified", Mobile: params.Mobile})
}

func (r *recordingCapability) Logout(context.Context) Response[struct{}] {
	return Succeed(200, struct{}{})
}

func (r *recordingCapability) SetSessionStatusInfo(context.Context, SessionStatusInfo) Response[struct{}] {
	return Succeed(200, struct{}{})
}

func (r *recordingCapability) GetCurrentUserRoles(context.Context) Response[[]string] {
	return Succeed(200, []string{"Guest"})
}

func (r *recordingCapability) SetUserLanguage(context.Context, string) Response[bool] {
	return Succeed(200, true)
}

func (r *recordingCapability) ChangePassword(context.Context, ChangePasswordParams) Response[bool] {
	return Succeed(200, true)
}

func (r *recordingCapability) GetPasswordResetInfo(context.Context, PasswordResetInfoParams) Response[ResetPasswordInfo] {
	return Succeed(200, ResetPasswordInfo{})
}

func (r *recordingCapability) GeneratePasswordResetOTP(context.Context, GenerateResetOTPParams) Response[GenerateResetOTPResponse] {
	return Succeed(200, GenerateResetOTPResponse{Sent: true})
}

func (r *recordingCapability) VerifyPasswordResetOTP(context.Context, VerifyResetOTPParams) Response[VerifyResetOTPResponse] {
	return Succeed(200, VerifyResetOTPResponse{Verified: true})
}

func (r *recordingCapability) UpdatePasswordWithToken(context.Context, UpdatePasswordParams) Response[UpdatePasswordResponse] {
	return Succeed(200, UpdatePasswordResponse{Updated: true})
}

func (r *recordingCapability) EstimatePassword(params EstimatePasswordParams) PasswordStrength {
	return EstimatePassword(params)
}

func TestDeprecatedShimsForward(t *testing.T) {
	backend := &recordingCapability{}
	c, err := New().WithCapability(backend).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer c.Close()

	resp := c.SMSLoginGeneratePIN(context.Background(), "+9711234567", true)
	if !resp.Success || resp.Data.Mobile != "+9711234567" {
		t.Fatalf("SMSLoginGeneratePIN response = %+v", resp)
	}
	if len(backend.sendOTP) != 1 || !backend.sendOTP[0].NewOTP {
		t.Fatalf("SendOTP forwarded params = %+v, want NewOTP=true", backend.sendOTP)
	}

	verify := c.SMSLoginVerifyPIN(context.Background(), "+9711234567", "123456", true)
	if !verify.Success || verify.Data.Status != "verified" {
		t.Fatalf("SMSLoginVerifyPIN response = %+v", verify)
	}
	if len(backend.verifyOTP) != 1 {
		t.Fatalf("VerifyOTP forwarded calls = %d, want 1", len(backend.verifyOTP))
	}
	fwd := backend.verifyOTP[0]
	if fwd.OTP != "123456" || !fwd.LoginToUser {
		t.Fatalf("VerifyOTP forwarded params = %+v", fwd)
	}
}

func TestDeprecatedShimsWithoutBackend(t *testing.T) {
	c := newTestController(t, nil)

	resp := c.SMSLoginGeneratePIN(context.Background(), "+9711234567", false)
	if resp.Success || resp.Error == nil {
		t.Fatalf("shim without backend = %+v, want failure envelope", resp)
	}
}
