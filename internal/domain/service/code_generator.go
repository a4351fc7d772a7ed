package service

// CodeGenerator produces short-lived numeric one-time codes for email
// verification. Implementations must draw from a cryptographically secure
// source; every call is independent of prior calls.
type CodeGenerator interface {
	// Generate returns a 6-digit code, uniformly distributed over [100000, 999999].
	Generate() (string, error)
}
