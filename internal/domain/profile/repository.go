package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, profileID string) (Profile, bool, error)
	// GetDisplayByIDs resolves display fields for a set of profiles in a
	// single lookup. Unknown ids are simply absent from the result.
	GetDisplayByIDs(ctx context.Context, profileIDs []string) (map[string]Display, error)
	Upsert(ctx context.Context, p Profile) error
}
