package domain

import "context"

// Logical keys in the durable key-value medium. The names match the data the
// dashboard has always stored, so existing saves keep working.
const (
	KeyProfiles = "allUserProfiles"
	KeyEntries  = "allWeeklyEntries"
	KeyActive   = "currentProfileName"
)

// Gateway is the port for durable key-value persistence of dashboard state.
// Load returns nil, nil when the key is absent.
type Gateway interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
