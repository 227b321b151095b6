package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/infra/repository"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// TxBeginner is the part of *pgxpool.Pool the unit of work needs.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	db  TxBeginner
	q   *pgquery.Queries
	loc *time.Location
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgquery.Queries, loc *time.Location) shared.UnitOfWork {
	return newPostgresUoW(pool, q, loc)
}

func newPostgresUoW(db TxBeginner, q *pgquery.Queries, loc *time.Location) *PostgresUoW {
	return &PostgresUoW{
		db:  db,
		q:   q,
		loc: loc,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; writers of
// the same restaurant day are serialised by the repository's advisory lock.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return markContention(errs.Mark(err, errTransactionBegin))
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	tx := &pgTx{
		dbtx: pgxTx,
		uow:  u,
	}

	if err := fn(ctx, tx); err != nil {
		return markContention(err)
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return markContention(errs.Mark(err, errTransactionCommit))
	}
	return nil
}

// Serialization failures and deadlocks are reported, never retried here.
func markContention(err error) error {
	if infra.IsContention(err) || infra.IsKind(err, infra.KindContention) {
		slog.Warn("transaction aborted by concurrent transaction", "error", err.Error())
		return errs.Mark(err, errs.ErrStoreContention)
	}
	return err
}

type pgTx struct {
	dbtx pgquery.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo  shared.ReservationRepository
	notificationRepo shared.NotificationRepository
}

func (t *pgTx) DB() pgquery.DBTX {
	return t.dbtx
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.uow.loc)
	}
	return t.reservationRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q)
	}
	return t.notificationRepo
}
