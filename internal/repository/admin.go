package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
)

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin model.Admin) (model.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	DeleteAdmin(ctx context.Context, id int) error
	CountAdmins(ctx context.Context) (int, error)
}

type adminRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewAdminRepository(db *sqlx.DB, log *zap.Logger) (*adminRepository, error) {
	return &adminRepository{
		db:  db,
		log: log.Named("repo.admin"),
	}, nil
}

const adminsTableName = `admins`

func (r *adminRepository) CreateAdmin(ctx context.Context, admin model.Admin) (model.Admin, error) {
	query, args, err := qb.Insert(adminsTableName).
		Columns("full_name", "email", "username", "password_hash").
		Values(admin.FullName, admin.Email, admin.Username, admin.PasswordHash).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Admin{}, err
	}
	var created model.Admin
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Admin{}, errs.ErrAdminExists
		}
		r.log.Error("CreateAdmin", zap.String("q", query))
		return model.Admin{}, err
	}
	return created, nil
}

func (r *adminRepository) GetAdminByUsername(ctx context.Context, username string) (model.Admin, error) {
	query, args, err := qb.Select("*").
		From(adminsTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Admin{}, err
	}
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Admin{}, errs.ErrNotFound
		}
		return model.Admin{}, err
	}
	return admin, nil
}

// password hashes stay out of listings
func (r *adminRepository) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	query, args, err := qb.Select("id", "full_name", "email", "username", "created_at").
		From(adminsTableName).
		OrderBy("id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	admins := make([]model.Admin, 0)
	if err := r.db.SelectContext(ctx, &admins, query, args...); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) DeleteAdmin(ctx context.Context, id int) error {
	query, args, err := qb.Delete(adminsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
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

func (r *adminRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `select count(*) from admins`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
