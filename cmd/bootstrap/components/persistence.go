package components

import (
	"storefront/internal/infra/db"
	"storefront/internal/infra/readstore"
	"storefront/internal/infra/uow"
	"storefront/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// Transactional write path
		uow.NewPostgresUoW,
		// Read side runs on the pool directly via implicit transactions
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
