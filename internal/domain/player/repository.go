package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// List returns the full pool in creation order.
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Create(ctx context.Context, item Player) error
}
