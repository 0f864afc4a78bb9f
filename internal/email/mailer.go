// Package email delivers registration notifications over SMTP.
package email

import (
	"context"
	"time"
)

// Mailer sends the registration email set. Implementations must be safe for
// concurrent use; the jobs worker calls SendAccessCode from multiple goroutines.
type Mailer interface {
	// SendConfirmation tells a registrant their signup was received and when
	// the access code will arrive.
	SendConfirmation(ctx context.Context, to, name string, launchDate time.Time) error
	// SendAccessCode delivers the access code itself.
	SendAccessCode(ctx context.Context, to, name, accessCode string) error
	// SendWelcome greets a registrant after successful code validation.
	SendWelcome(ctx context.Context, to, name string) error
}
