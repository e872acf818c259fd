package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
)

// InventoryRepository owns the books table: catalog CRUD plus the atomic
// copy counters the circulation workflow depends on.
type InventoryRepository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
	ReserveCopy(ctx context.Context, id int) error
	ReleaseCopy(ctx context.Context, id int) error
	CountCopies(ctx context.Context) (books, total, available int, err error)
}

type inventoryRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewInventoryRepository(db *sqlx.DB, log *zap.Logger) (*inventoryRepository, error) {
	return &inventoryRepository{
		db:  db,
		log: log.Named("repo.inventory"),
	}, nil
}

const booksTableName = `books`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookColumns = []string{"id", "book_name", "rack_number", "total_count", "available_count"}

func (r *inventoryRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *inventoryRepository) GetBook(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *inventoryRepository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("book_name", "rack_number", "total_count", "available_count").
		Values(req.Name, req.RackNumber, req.Count, req.Count).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

// UpdateBook moves total_count to req.Count and shifts available_count by the
// same delta, so copies on loan stay accounted for. Shrinking below the
// number of outstanding copies is refused.
func (r *inventoryRepository) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	q := `
update books
    set book_name = $2,
        rack_number = $3,
        available_count = available_count + ($4 - total_count),
        total_count = $4
where id = $1 and $4 >= total_count - available_count
returning id, book_name, rack_number, total_count, available_count`

	var book model.Book
	err := r.db.GetContext(ctx, &book, q, id, req.Name, req.RackNumber, req.Count)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Book{}, err
	}
	if _, err := r.GetBook(ctx, id); err != nil {
		return model.Book{}, err
	}
	return model.Book{}, errs.ErrHasActiveLoans
}

func (r *inventoryRepository) DeleteBook(ctx context.Context, id int) error {
	q := `
delete from books
where id = $1
  and not exists (select 1 from transactions t where t.book_id = $1 and t.status = 'issued')`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetBook(ctx, id); err != nil {
		return err
	}
	return errs.ErrHasActiveLoans
}

// ReserveCopy is the conditional decrement serializing concurrent issues:
// the availability check and the write are one statement.
func (r *inventoryRepository) ReserveCopy(ctx context.Context, id int) error {
	q := `
update books
    set available_count = available_count - 1
where id = $1 and available_count > 0`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetBook(ctx, id); err != nil {
		return err
	}
	return errs.ErrInsufficientStock
}

// ReleaseCopy increments availability, capped at total_count.
func (r *inventoryRepository) ReleaseCopy(ctx context.Context, id int) error {
	q := `
update books
    set available_count = least(available_count + 1, total_count)
where id = $1`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) CountCopies(ctx context.Context) (books, total, available int, err error) {
	q := `select count(*), coalesce(sum(total_count), 0), coalesce(sum(available_count), 0) from books`
	if err = r.db.QueryRowContext(ctx, q).Scan(&books, &total, &available); err != nil {
		return 0, 0, 0, err
	}
	return books, total, available, nil
}
