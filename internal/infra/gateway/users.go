package gateway

import (
	"context"

	"github.com/harborview/fleetwatch/client"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/usecase"
)

type UserGateway struct {
	client *client.Client
}

var _ usecase.UserDirectory = (*UserGateway)(nil)

func NewUserGateway(cl *client.Client) *UserGateway {
	return &UserGateway{client: cl}
}

func (g *UserGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	records, err := g.client.ListUsers(ctx)
	if err != nil {
		return nil, domain.UpstreamError{Op: "list users", Err: err}
	}

	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, domain.User{
			ID:    rec.ID,
			Name:  rec.Name,
			Email: rec.Email,
		})
	}
	return users, nil
}
