package service

import "context"

// Notifier delivers verification codes to the account's email address.
// Delivery is an I/O operation with unbounded latency; implementations must
// honor the context deadline. A delivery failure must never corrupt account
// state — callers surface it without rolling back the persisted account.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
