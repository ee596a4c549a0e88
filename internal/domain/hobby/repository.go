package hobby

import (
	"context"

	"github.com/hobbylab/hobbylab-core/internal/domain/gamification"
)

// Repository persists the entity tree and the user profile as whole documents.
// There is no partial or incremental persistence.
type Repository interface {
	// LoadEntities returns the stored tree, or an empty tree when none exists.
	LoadEntities(ctx context.Context) (Tree, error)

	// LoadProfile returns the stored profile, or nil and no error when none exists.
	LoadProfile(ctx context.Context) (*gamification.UserProfile, error)

	// SaveEntities replaces the stored tree.
	SaveEntities(ctx context.Context, tree Tree) error

	// SaveProfile replaces the stored profile.
	SaveProfile(ctx context.Context, profile gamification.UserProfile) error

	// ClearAll removes both documents.
	ClearAll(ctx context.Context) error
}
