package gateway

import (
	"context"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

// EntityClient is the remote API of one entity family.
type EntityClient[T models.Entity] struct {
	g      *GRPCGateway
	family models.Family
}

func NewEntityClient[T models.Entity](g *GRPCGateway, family models.Family) *EntityClient[T] {
	return &EntityClient[T]{g: g, family: family}
}

func (c *EntityClient[T]) Create(ctx context.Context, e T) (T, error) {
	return c.call(ctx, methodEntityCreate, &entityRequest{Family: c.family, Entity: e})
}

func (c *EntityClient[T]) Update(ctx context.Context, e T) (T, error) {
	return c.call(ctx, methodEntityUpdate, &entityRequest{Family: c.family, ID: e.EntityID(), Entity: e})
}

func (c *EntityClient[T]) Get(ctx context.Context, id string) (T, error) {
	return c.call(ctx, methodEntityGet, &entityRequest{Family: c.family, ID: id})
}

func (c *EntityClient[T]) Delete(ctx context.Context, id string) error {
	return c.g.invoke(ctx, methodEntityDelete, &entityRequest{Family: c.family, ID: id}, &empty{})
}

func (c *EntityClient[T]) call(ctx context.Context, method string, req *entityRequest) (T, error) {
	var resp entityResponse[T]
	if err := c.g.invoke(ctx, method, req, &resp); err != nil {
		var zero T
		return zero, err
	}
	return resp.Entity, nil
}
