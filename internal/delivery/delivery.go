// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application
// bootstrap. Serve blocks until the surface stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
