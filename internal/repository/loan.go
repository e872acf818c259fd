package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
)

// LoanRepository owns the transactions table. Records are history: there is
// no delete, only the issued -> returned transition and field edits.
type LoanRepository interface {
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	GetLoan(ctx context.Context, id int) (model.Loan, error)
	MarkReturned(ctx context.Context, id int, returnedAt time.Time) (model.Loan, error)
	UpdateLoan(ctx context.Context, id int, req model.UpdateLoanRequest) (model.Loan, error)
	SetReminderSent(ctx context.Context, id int) error
	ListLoans(ctx context.Context) ([]model.LoanDetail, error)
	CountLoans(ctx context.Context) (issued, returned int, err error)
}

type loanRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLoanRepository(db *sqlx.DB, log *zap.Logger) (*loanRepository, error) {
	return &loanRepository{
		db:  db,
		log: log.Named("repo.loan"),
	}, nil
}

const transactionsTableName = `transactions`

func (r *loanRepository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(transactionsTableName).
		Columns("loan_uid", "book_id", "accession_number",
			"employee_name", "employee_number", "employee_email", "employee_phone",
			"issue_date", "due_date", "expected_return_date", "status", "reminder_sent").
		Values(uuid.New(), loan.BookID, loan.AccessionNumber,
			loan.EmployeeName, loan.EmployeeNumber, loan.EmployeeEmail, loan.EmployeePhone,
			loan.IssueDate, loan.DueDate, loan.ExpectedReturnDate, model.StatusIssued, false).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var created model.Loan
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, err
	}
	return created, nil
}

func (r *loanRepository) GetLoan(ctx context.Context, id int) (model.Loan, error) {
	query, args, err := qb.Select("*").
		From(transactionsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// MarkReturned performs the issued -> returned transition and stamps the
// return date in one statement, so a loan can be returned at most once.
func (r *loanRepository) MarkReturned(ctx context.Context, id int, returnedAt time.Time) (model.Loan, error) {
	q := `
update transactions
    set status = 'returned', return_date = $2
where id = $1 and status = 'issued'
returning *`

	var loan model.Loan
	err := r.db.GetContext(ctx, &loan, q, id, returnedAt)
	if err == nil {
		return loan, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Loan{}, err
	}
	if _, err := r.GetLoan(ctx, id); err != nil {
		return model.Loan{}, err
	}
	return model.Loan{}, errs.ErrAlreadyReturned
}

// UpdateLoan edits borrower details and the expected return date. Returned
// records are editable too, matching the administrative-correction behavior
// of the circulation desk.
func (r *loanRepository) UpdateLoan(ctx context.Context, id int, req model.UpdateLoanRequest) (model.Loan, error) {
	b := qb.Update(transactionsTableName).
		Set("employee_name", req.EmployeeName).
		Set("employee_email", req.EmployeeEmail).
		Set("employee_phone", req.EmployeePhone).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")
	if req.ExpectedReturnDate != nil {
		b = b.Set("expected_return_date", req.ExpectedReturnDate.Time)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *loanRepository) SetReminderSent(ctx context.Context, id int) error {
	query, args, err := qb.Update(transactionsTableName).
		Set("reminder_sent", true).
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

func (r *loanRepository) ListLoans(ctx context.Context) ([]model.LoanDetail, error) {
	// left join keeps loan history visible after its book was deleted
	query, args, err := qb.Select("t.*",
		"coalesce(b.book_name, '') as book_name",
		"coalesce(b.rack_number, '') as rack_number").
		From(transactionsTableName + " t").
		LeftJoin(booksTableName + " b on b.id = t.book_id").
		OrderBy("t.issue_date desc", "t.id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	loans := make([]model.LoanDetail, 0)
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) CountLoans(ctx context.Context) (issued, returned int, err error) {
	q := `
select count(*) filter (where status = 'issued'),
       count(*) filter (where status = 'returned')
from transactions`
	if err = r.db.QueryRowContext(ctx, q).Scan(&issued, &returned); err != nil {
		return 0, 0, err
	}
	return issued, returned, nil
}
