// internal/app/features/members/handler.go
package members

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	identitysvc "github.com/modelcove/groupsync/internal/app/service/identity"
	membersvc "github.com/modelcove/groupsync/internal/app/service/members"
	"github.com/modelcove/groupsync/internal/domain/models"
)

// Synchronizer is the slice of the membership service the handlers use.
type Synchronizer interface {
	List(ctx context.Context, groupID string) ([]models.UserInGroup, error)
	Add(ctx context.Context, groupID string, accountID primitive.ObjectID, level models.AccessLevel) ([]models.UserInGroup, error)
	Edit(ctx context.Context, groupID string, accountID primitive.ObjectID, level models.AccessLevel) ([]models.UserInGroup, error)
	Remove(ctx context.Context, groupID string, accountID primitive.ObjectID) ([]models.UserInGroup, error)
	AddBatch(ctx context.Context, groupID string, inputs []membersvc.MemberInput) ([]models.UserInGroup, membersvc.BatchReport, error)
	RemoveBatch(ctx context.Context, groupID string, inputs []membersvc.MemberInput) ([]models.UserInGroup, membersvc.BatchReport, error)
	IsMember(ctx context.Context, groupID string, key identitysvc.Key) bool
}

// Handler is the shared dependency container for the members feature.
type Handler struct {
	Members Synchronizer
	Log     *zap.Logger
}

func NewHandler(members Synchronizer, logger *zap.Logger) *Handler {
	return &Handler{
		Members: members,
		Log:     logger,
	}
}

// memberView is one roster row in JSON responses.
type memberView struct {
	AccountID   string `json:"account_id"`
	PersonID    string `json:"person_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	AccessLevel string `json:"access_level,omitempty"`
}

func viewRoster(roster []models.UserInGroup) []memberView {
	out := make([]memberView, 0, len(roster))
	for _, u := range roster {
		out = append(out, memberView{
			AccountID:   u.Account.ID.Hex(),
			PersonID:    u.Account.PersonID.Hex(),
			Username:    u.Account.Username,
			Email:       u.Account.Email,
			FullName:    u.Account.FullName,
			AccessLevel: u.AccessLevel.String(),
		})
	}
	return out
}

// batchFailureView flattens a batch failure for JSON; the error becomes a
// reason string.
type batchFailureView struct {
	Input  membersvc.MemberInput `json:"input"`
	Reason string                `json:"reason"`
}

// batchResponse carries the refreshed roster plus the per-item outcome.
type batchResponse struct {
	Members   []memberView       `json:"members"`
	Succeeded []memberView       `json:"succeeded"`
	Failed    []batchFailureView `json:"failed"`
}

func viewBatch(roster []models.UserInGroup, report membersvc.BatchReport) batchResponse {
	resp := batchResponse{
		Members:   viewRoster(roster),
		Succeeded: viewRoster(report.Succeeded),
		Failed:    make([]batchFailureView, 0, len(report.Failed)),
	}
	for _, f := range report.Failed {
		resp.Failed = append(resp.Failed, batchFailureView{Input: f.Input, Reason: f.Err.Error()})
	}
	return resp
}
