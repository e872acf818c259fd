package model

import (
	"strings"
	"time"
)

// Date accepts date-only JSON values ("2024-01-01") on request payloads.
type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

type Book struct {
	ID             int    `json:"id" db:"id"`
	Name           string `json:"name" db:"book_name"`
	RackNumber     string `json:"rackNumber" db:"rack_number"`
	TotalCount     int    `json:"totalCount" db:"total_count"`
	AvailableCount int    `json:"availableCount" db:"available_count"`
}

type CreateBookRequest struct {
	Name       string `json:"name" validate:"required"`
	RackNumber string `json:"rackNumber" validate:"required"`
	Count      int    `json:"count" validate:"required,gte=1"`
}

type UpdateBookRequest struct {
	Name       string `json:"name" validate:"required"`
	RackNumber string `json:"rackNumber" validate:"required"`
	Count      int    `json:"count" validate:"required,gte=1"`
}

type LoanStatus string

const (
	StatusIssued   LoanStatus = "issued"
	StatusReturned LoanStatus = "returned"
)

type Loan struct {
	ID                 int        `json:"id" db:"id"`
	LoanUid            string     `json:"loanUid" db:"loan_uid"`
	BookID             int        `json:"bookId" db:"book_id"`
	AccessionNumber    string     `json:"accessionNumber" db:"accession_number"`
	EmployeeName       string     `json:"employeeName" db:"employee_name"`
	EmployeeNumber     string     `json:"employeeNumber" db:"employee_number"`
	EmployeeEmail      string     `json:"employeeEmail" db:"employee_email"`
	EmployeePhone      string     `json:"employeePhone" db:"employee_phone"`
	IssueDate          time.Time  `json:"issueDate" db:"issue_date"`
	DueDate            time.Time  `json:"dueDate" db:"due_date"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty" db:"expected_return_date"`
	ReturnDate         *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Status             LoanStatus `json:"status" db:"status"`
	ReminderSent       bool       `json:"reminderSent" db:"reminder_sent"`
}

// LoanDetail is a loan joined with catalog fields for listing.
type LoanDetail struct {
	Loan
	BookName   string `json:"bookName" db:"book_name"`
	RackNumber string `json:"rackNumber" db:"rack_number"`
}

type IssueBookRequest struct {
	BookID             int    `json:"bookId" validate:"required"`
	AccessionNumber    string `json:"accessionNumber"`
	EmployeeName       string `json:"employeeName" validate:"required"`
	EmployeeNumber     string `json:"employeeNumber" validate:"required"`
	EmployeeEmail      string `json:"employeeEmail" validate:"required,email"`
	EmployeePhone      string `json:"employeePhone"`
	IssueDate          Date   `json:"issueDate" validate:"required"`
	ExpectedReturnDate *Date  `json:"expectedReturnDate"`
}

type UpdateLoanRequest struct {
	EmployeeName       string `json:"employeeName" validate:"required"`
	EmployeeEmail      string `json:"employeeEmail" validate:"required,email"`
	EmployeePhone      string `json:"employeePhone"`
	ExpectedReturnDate *Date  `json:"expectedReturnDate"`
}

type ReturnBookRequest struct {
	BookID int `json:"bookId" validate:"required"`
}

type Admin struct {
	ID           int       `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type CreateAdminRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	SendEmail bool   `json:"sendEmail"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"token"`
	ExpiresIn   int    `json:"expiresIn"`
}

// StatsSummary backs the dashboard view.
type StatsSummary struct {
	TotalBooks      int `json:"totalBooks"`
	TotalCopies     int `json:"totalCopies"`
	AvailableCopies int `json:"availableCopies"`
	IssuedLoans     int `json:"issuedLoans"`
	ReturnedLoans   int `json:"returnedLoans"`
	Admins          int `json:"admins"`
}
