package components

import (
	"restaurant-booking/internal/infra/uow"

	"go.uber.org/fx"
)

// RepositoryModule exposes the write side. Repositories are bound to a
// transaction, so only the unit of work is provided.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)
