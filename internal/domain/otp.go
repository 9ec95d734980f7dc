package domain

// OTP purposes. A code issued for one flow can never be consumed by the
// other: verification requires both email and purpose to match.
const (
	PurposeVerifyEmail   = "verify-email"
	PurposeResetPassword = "reset-password"
)

// OneTimeCode is a short-lived 6-digit verification code.
// PK: email, SK: purpose. ExpiresAt is a Unix timestamp used as DynamoDB TTL,
// and also checked explicitly on verification since TTL deletion is lazy.
// A new issuance for the same (email, purpose) overwrites the previous code,
// so at most one code per flow is ever live.
type OneTimeCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Purpose   string `json:"purpose" dynamodbav:"purpose"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
