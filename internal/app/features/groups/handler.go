// internal/app/features/groups/handler.go
package groups

import (
	"context"

	groupsvc "github.com/modelcove/groupsync/internal/app/service/groups"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	"github.com/modelcove/groupsync/internal/domain/models"
	"go.uber.org/zap"
)

// Lifecycle is the slice of the group lifecycle service the handlers use.
type Lifecycle interface {
	Create(ctx context.Context, p groupsvc.CreateParams) (models.Group, error)
	Update(ctx context.Context, groupID, name, path string) (models.Group, error)
	Delete(ctx context.Context, groupID string) error
	CheckAvailability(ctx context.Context, caller identitysvc.Key, name string) (string, error)
}

// Handler is the shared dependency container for the groups feature.
type Handler struct {
	Lifecycle Lifecycle
	Log       *zap.Logger
}

// NewHandler constructs a groups Handler. It is typically called from the
// bootstrap BuildHandler function, where the services and logger are
// already initialized.
func NewHandler(lifecycle Lifecycle, logger *zap.Logger) *Handler {
	return &Handler{
		Lifecycle: lifecycle,
		Log:       logger,
	}
}
