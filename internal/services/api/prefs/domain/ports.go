package domain

import "context"

// ServicePort defines the preferences service interface
type ServicePort interface {
	// Get returns the user's saved preferences, or the defaults when none exist
	Get(ctx context.Context, userID string) (Preferences, error)

	// Update replaces the user's preferences wholesale
	Update(ctx context.Context, userID string, in UpdateInput) (Preferences, error)
}
