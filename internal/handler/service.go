package handler

import (
	"context"

	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CirculationService interface {
	ListLoans(ctx context.Context) ([]model.LoanDetail, error)
	IssueBook(ctx context.Context, req model.IssueBookRequest) (model.Loan, error)
	ReturnBook(ctx context.Context, loanID, bookID int) (model.Loan, error)
	UpdateLoan(ctx context.Context, id int, req model.UpdateLoanRequest) (model.Loan, error)
	SendReminder(ctx context.Context, loanID int) error
}

type CatalogService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

type AdminService interface {
	Authorize(ctx context.Context, req model.AuthRequest) (model.AuthResponse, model.Admin, error)
	CreateAdmin(ctx context.Context, req model.CreateAdminRequest) (model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	DeleteAdmin(ctx context.Context, id int) error
}

type StatsService interface {
	Summary(ctx context.Context) (model.StatsSummary, error)
}

var (
	_ CirculationService = (*service.CirculationService)(nil)
	_ CatalogService     = (*service.CatalogService)(nil)
	_ AdminService       = (*service.AdminService)(nil)
	_ StatsService       = (*service.StatsService)(nil)
)
