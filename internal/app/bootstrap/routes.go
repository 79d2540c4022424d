// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	groupsfeature "github.com/modelcove/groupsync/internal/app/features/groups"
	healthfeature "github.com/modelcove/groupsync/internal/app/features/health"
	membersfeature "github.com/modelcove/groupsync/internal/app/features/members"
	"github.com/modelcove/groupsync/internal/app/platform/gitlab"
	groupsvc "github.com/modelcove/groupsync/internal/app/service/groups"
	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	membersvc "github.com/modelcove/groupsync/internal/app/service/members"
	accountstore "github.com/modelcove/groupsync/internal/app/store/accounts"
	groupstore "github.com/modelcove/groupsync/internal/app/store/groups"
	membershipstore "github.com/modelcove/groupsync/internal/app/store/memberships"
	"github.com/modelcove/groupsync/internal/app/system/refresh"
	"github.com/modelcove/groupsync/internal/app/system/txn"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The service wires stores, the external
// platform client, the identity resolver, and the group/membership services,
// then mounts the JSON feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	platform, err := gitlab.New(appCfg.PlatformBaseURL, appCfg.PlatformAdminToken, logger)
	if err != nil {
		logger.Error("platform client init failed", zap.Error(err))
		return nil, err
	}

	groups := groupstore.New(deps.MongoDatabase)
	accounts := accountstore.New(deps.MongoDatabase)
	memberships := membershipstore.New(deps.MongoDatabase)

	resolver := identitysvc.NewResolver(accounts, platform, logger)

	// Membership mutations re-read the member's platform profile so local
	// account data does not go stale.
	hub := refresh.NewHub(logger)
	hub.Subscribe(profileRefresher(accounts, platform, logger))

	tx := txn.MongoRunner(deps.MongoDatabase, logger)

	lifecycle := groupsvc.New(groups, memberships, platform, resolver, hub, tx, logger)
	lifecycle.SetDefaultVisibility(appCfg.DefaultVisibility)

	members := membersvc.New(groups, accounts, memberships, platform, resolver, hub, tx, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Group lifecycle, with membership routes nested per group
	groupsHandler := groupsfeature.NewHandler(lifecycle, logger)
	membersHandler := membersfeature.NewHandler(members, logger)

	gr := groupsfeature.Routes(groupsHandler)
	gr.Mount("/{id}/members", membersfeature.Routes(membersHandler))
	r.Mount("/groups", gr)

	return r, nil
}

// profileRefresher returns a listener that re-reads an account's platform
// profile and mirrors username, email, and full name locally.
func profileRefresher(accounts *accountstore.Store, platform *gitlab.Client, logger *zap.Logger) refresh.ListenerFunc {
	return func(ctx context.Context, accountID primitive.ObjectID) error {
		acct, err := accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !acct.Linked() {
			logger.Debug("account has no platform link; profile refresh skipped",
				zap.String("account_id", accountID.Hex()))
			return nil
		}
		remote, err := platform.GetUser(ctx, *acct.ExternalID)
		if err != nil {
			return err
		}
		return accounts.UpdateProfile(ctx, acct.ID, remote.Username, remote.Email, remote.Name)
	}
}
