package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/service"
	cb "github.com/smartlib/circulation-service/pkg/circuit_breaker"
)

// The fakes below keep real counters behind a mutex, so the invariant and
// concurrency properties are exercised against actual state transitions, the
// way the conditional UPDATE statements behave in Postgres.

type fakeInventory struct {
	mu    sync.Mutex
	books map[int]*model.Book

	// releaseFailures injects that many ReleaseCopy errors before recovering
	releaseFailures int
}

func newFakeInventory(books ...model.Book) *fakeInventory {
	m := make(map[int]*model.Book, len(books))
	for i := range books {
		b := books[i]
		m[b.ID] = &b
	}
	return &fakeInventory{books: m}
}

func (f *fakeInventory) GetBook(_ context.Context, id int) (model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return *b, nil
}

func (f *fakeInventory) ReserveCopy(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return errs.ErrNotFound
	}
	if b.AvailableCount <= 0 {
		return errs.ErrInsufficientStock
	}
	b.AvailableCount--
	return nil
}

func (f *fakeInventory) ReleaseCopy(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseFailures > 0 {
		f.releaseFailures--
		return errors.New("connection reset")
	}
	b, ok := f.books[id]
	if !ok {
		return errs.ErrNotFound
	}
	if b.AvailableCount < b.TotalCount {
		b.AvailableCount++
	}
	return nil
}

func (f *fakeInventory) available(id int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.books[id].AvailableCount
}

func (f *fakeInventory) ListBooks(context.Context) ([]model.Book, error) { return nil, nil }
func (f *fakeInventory) CreateBook(context.Context, model.CreateBookRequest) (model.Book, error) {
	return model.Book{}, nil
}
func (f *fakeInventory) UpdateBook(context.Context, int, model.UpdateBookRequest) (model.Book, error) {
	return model.Book{}, nil
}
func (f *fakeInventory) DeleteBook(context.Context, int) error { return nil }
func (f *fakeInventory) CountCopies(context.Context) (int, int, int, error) {
	return 0, 0, 0, nil
}

type fakeLoans struct {
	mu     sync.Mutex
	nextID int
	loans  map[int]*model.Loan

	createErr error
}

func newFakeLoans() *fakeLoans {
	return &fakeLoans{nextID: 1, loans: make(map[int]*model.Loan)}
}

func (f *fakeLoans) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Loan{}, f.createErr
	}
	loan.ID = f.nextID
	loan.LoanUid = uuid.New().String()
	loan.Status = model.StatusIssued
	f.nextID++
	f.loans[loan.ID] = &loan
	return loan, nil
}

func (f *fakeLoans) GetLoan(_ context.Context, id int) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loan, ok := f.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	return *loan, nil
}

func (f *fakeLoans) MarkReturned(_ context.Context, id int, returnedAt time.Time) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loan, ok := f.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	if loan.Status != model.StatusIssued {
		return model.Loan{}, errs.ErrAlreadyReturned
	}
	loan.Status = model.StatusReturned
	loan.ReturnDate = &returnedAt
	return *loan, nil
}

func (f *fakeLoans) UpdateLoan(_ context.Context, id int, req model.UpdateLoanRequest) (model.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	loan, ok := f.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	loan.EmployeeName = req.EmployeeName
	loan.EmployeeEmail = req.EmployeeEmail
	loan.EmployeePhone = req.EmployeePhone
	if req.ExpectedReturnDate != nil {
		t := req.ExpectedReturnDate.Time
		loan.ExpectedReturnDate = &t
	}
	return *loan, nil
}

func (f *fakeLoans) SetReminderSent(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	loan, ok := f.loans[id]
	if !ok {
		return errs.ErrNotFound
	}
	loan.ReminderSent = true
	return nil
}

func (f *fakeLoans) ListLoans(context.Context) ([]model.LoanDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.LoanDetail, 0, len(f.loans))
	for _, loan := range f.loans {
		out = append(out, model.LoanDetail{Loan: *loan})
	}
	return out, nil
}

func (f *fakeLoans) CountLoans(context.Context) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var issued, returned int
	for _, loan := range f.loans {
		if loan.Status == model.StatusIssued {
			issued++
		} else {
			returned++
		}
	}
	return issued, returned, nil
}

// issuedCount reports loans in issued state for one book, for checking the
// available == total - issued invariant.
func (f *fakeLoans) issuedCount(bookID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, loan := range f.loans {
		if loan.BookID == bookID && loan.Status == model.StatusIssued {
			n++
		}
	}
	return n
}

type fakeGateway struct {
	mu   sync.Mutex
	err  error
	sent []string
}

func (f *fakeGateway) Send(to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newCirculation(inv *fakeInventory, loans *fakeLoans, gw *fakeGateway) *service.CirculationService {
	breaker := cb.New(100, time.Second, 0.99, 1)
	return service.NewCirculationService(inv, loans, gw, breaker, nil, zap.NewExample())
}

func issueReq(bookID int) model.IssueBookRequest {
	return model.IssueBookRequest{
		BookID:         bookID,
		EmployeeName:   "John Smith",
		EmployeeNumber: "E-100",
		EmployeeEmail:  "john.smith@corp.example",
		IssueDate:      model.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestCirculation_IssueBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issue decrements availability and defaults due date to +10 days", func(t *testing.T) {
		inv := newFakeInventory(model.Book{ID: 1, Name: "Dune", TotalCount: 3, AvailableCount: 3})
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, &fakeGateway{})

		loan, err := svc.IssueBook(ctx, issueReq(1))
		require.NoError(t, err)
		require.Equal(t, model.StatusIssued, loan.Status)
		require.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), loan.DueDate)
		require.Nil(t, loan.ReturnDate)
		require.Equal(t, 2, inv.available(1))
	})

	t.Run("explicit expected return date becomes the due date", func(t *testing.T) {
		inv := newFakeInventory(model.Book{ID: 1, TotalCount: 1, AvailableCount: 1})
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, &fakeGateway{})

		req := issueReq(1)
		req.ExpectedReturnDate = &model.Date{Time: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)}
		loan, err := svc.IssueBook(ctx, req)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), loan.DueDate)
	})

	t.Run("no copies left fails and creates no loan", func(t *testing.T) {
		inv := newFakeInventory(model.Book{ID: 1, TotalCount: 2, AvailableCount: 0})
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, &fakeGateway{})

		_, err := svc.IssueBook(ctx, issueReq(1))
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		require.Equal(t, 0, inv.available(1))
		require.Equal(t, 0, loans.issuedCount(1))
	})

	t.Run("unknown book fails and creates no loan", func(t *testing.T) {
		inv := newFakeInventory()
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, &fakeGateway{})

		_, err := svc.IssueBook(ctx, issueReq(99))
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.Equal(t, 0, loans.issuedCount(99))
	})

	t.Run("failed record creation rolls the reservation back", func(t *testing.T) {
		inv := newFakeInventory(model.Book{ID: 1, TotalCount: 3, AvailableCount: 3})
		loans := newFakeLoans()
		loans.createErr = errors.New("db internal")
		svc := newCirculation(inv, loans, &fakeGateway{})

		_, err := svc.IssueBook(ctx, issueReq(1))
		require.Error(t, err)
		require.NotErrorIs(t, err, errs.ErrReconciliation)
		require.Equal(t, 3, inv.available(1))
	})

	t.Run("rollback exhausting retries surfaces reconciliation error", func(t *testing.T) {
		inv := newFakeInventory(model.Book{ID: 1, TotalCount: 3, AvailableCount: 3})
		inv.releaseFailures = 100
		loans := newFakeLoans()
		loans.createErr = errors.New("db internal")
		svc := newCirculation(inv, loans, &fakeGateway{})

		_, err := svc.IssueBook(ctx, issueReq(1))
		require.ErrorIs(t, err, errs.ErrReconciliation)
	})
}

func TestCirculation_ReturnBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeInventory, *fakeLoans, *service.CirculationService, model.Loan) {
		t.Helper()
		inv := newFakeInventory(model.Book{ID: 1, TotalCount: 3, AvailableCount: 3})
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, &fakeGateway{})
		loan, err := svc.IssueBook(ctx, issueReq(1))
		require.NoError(t, err)
		return inv, loans, svc, loan
	}

	t.Run("return restores availability and stamps the return date", func(t *testing.T) {
		inv, _, svc, loan := setup(t)
		require.Equal(t, 2, inv.available(1))

		returned, err := svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.NoError(t, err)
		require.Equal(t, model.StatusReturned, returned.Status)
		require.NotNil(t, returned.ReturnDate)
		require.Equal(t, 3, inv.available(1))
	})

	t.Run("double return fails and leaves the counter alone", func(t *testing.T) {
		inv, _, svc, loan := setup(t)
		_, err := svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.NoError(t, err)

		_, err = svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.ErrorIs(t, err, errs.ErrAlreadyReturned)
		require.Equal(t, 3, inv.available(1))
	})

	t.Run("mismatched book is not found", func(t *testing.T) {
		inv, loans, svc, loan := setup(t)
		_, err := svc.ReturnBook(ctx, loan.ID, 42)
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.Equal(t, 2, inv.available(1))
		require.Equal(t, 1, loans.issuedCount(1))
	})

	t.Run("transient release failure is retried", func(t *testing.T) {
		inv, _, svc, loan := setup(t)
		inv.releaseFailures = 2

		_, err := svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.NoError(t, err)
		require.Equal(t, 3, inv.available(1))
	})

	t.Run("exhausted release keeps the loan returned and reports reconciliation", func(t *testing.T) {
		inv, loans, svc, loan := setup(t)
		inv.releaseFailures = 100

		_, err := svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.ErrorIs(t, err, errs.ErrReconciliation)

		// the physical return is a fact: never reverted
		got, err := loans.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, model.StatusReturned, got.Status)
	})

	t.Run("issue then return restores the pre-issue availability", func(t *testing.T) {
		inv, _, svc, _ := setup(t)
		loan, err := svc.IssueBook(ctx, issueReq(1))
		require.NoError(t, err)
		require.Equal(t, 1, inv.available(1))

		_, err = svc.ReturnBook(ctx, loan.ID, loan.BookID)
		require.NoError(t, err)
		require.Equal(t, 2, inv.available(1))
	})
}

func TestCirculation_ConcurrentIssues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const (
		available  = 3
		goroutines = 10
	)
	inv := newFakeInventory(model.Book{ID: 1, TotalCount: available, AvailableCount: available})
	loans := newFakeLoans()
	svc := newCirculation(inv, loans, &fakeGateway{})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.IssueBook(ctx, issueReq(1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, available, succeeded)
	require.Equal(t, goroutines-available, rejected)
	require.Equal(t, 0, inv.available(1))
	require.Equal(t, available, loans.issuedCount(1))
}

// The scripted walkthrough: three copies, two borrowers, one return, one
// rejected double return.
func TestCirculation_Walkthrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inv := newFakeInventory(model.Book{ID: 1, Name: "Dune", TotalCount: 3, AvailableCount: 3})
	loans := newFakeLoans()
	svc := newCirculation(inv, loans, &fakeGateway{})

	loanA, err := svc.IssueBook(ctx, issueReq(1))
	require.NoError(t, err)
	require.Equal(t, 2, inv.available(1))
	require.Equal(t, model.StatusIssued, loanA.Status)
	require.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), loanA.DueDate)

	reqB := issueReq(1)
	reqB.EmployeeName = "Jane Doe"
	reqB.EmployeeNumber = "E-200"
	_, err = svc.IssueBook(ctx, reqB)
	require.NoError(t, err)
	require.Equal(t, 1, inv.available(1))

	returnedA, err := svc.ReturnBook(ctx, loanA.ID, loanA.BookID)
	require.NoError(t, err)
	require.Equal(t, 2, inv.available(1))
	require.Equal(t, model.StatusReturned, returnedA.Status)
	require.NotNil(t, returnedA.ReturnDate)

	_, err = svc.ReturnBook(ctx, loanA.ID, loanA.BookID)
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	require.Equal(t, 2, inv.available(1))

	// invariant: available == total - issued
	require.Equal(t, 3-loans.issuedCount(1), inv.available(1))
}

func TestCirculation_SendReminder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T, gw *fakeGateway) (*fakeLoans, *service.CirculationService, model.Loan) {
		t.Helper()
		inv := newFakeInventory(model.Book{ID: 1, Name: "Dune", TotalCount: 1, AvailableCount: 1})
		loans := newFakeLoans()
		svc := newCirculation(inv, loans, gw)
		loan, err := svc.IssueBook(ctx, issueReq(1))
		require.NoError(t, err)
		return loans, svc, loan
	}

	t.Run("flag set only on confirmed delivery", func(t *testing.T) {
		gw := &fakeGateway{}
		loans, svc, loan := setup(t, gw)

		require.NoError(t, svc.SendReminder(ctx, loan.ID))
		require.Equal(t, []string{"john.smith@corp.example"}, gw.sent)

		got, err := loans.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.True(t, got.ReminderSent)
	})

	t.Run("gateway failure leaves the flag untouched and is retryable", func(t *testing.T) {
		gw := &fakeGateway{err: errors.New("connection refused")}
		loans, svc, loan := setup(t, gw)

		err := svc.SendReminder(ctx, loan.ID)
		require.ErrorIs(t, err, errs.ErrGatewayFailure)

		got, err := loans.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.False(t, got.ReminderSent)

		// gateway recovered: retry succeeds and sets the flag
		gw.mu.Lock()
		gw.err = nil
		gw.mu.Unlock()
		require.NoError(t, svc.SendReminder(ctx, loan.ID))
		got, err = loans.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.True(t, got.ReminderSent)
	})

	t.Run("missing loan", func(t *testing.T) {
		_, svc, _ := setup(t, &fakeGateway{})
		require.ErrorIs(t, svc.SendReminder(ctx, 404), errs.ErrNotFound)
	})
}
