package service

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/internal/errs"
	"github.com/smartlib/circulation-service/internal/model"
	"github.com/smartlib/circulation-service/internal/repository"
	cb "github.com/smartlib/circulation-service/pkg/circuit_breaker"
	"github.com/smartlib/circulation-service/pkg/kafka"
)

// NotificationGateway delivers due-date reminders. An error means the
// message was not handed off, so a retry is safe.
type NotificationGateway interface {
	Send(to, subject, body string) error
}

const (
	// loan period applied when the caller supplies no expected return date
	defaultLoanDays = 10

	// attempts to persist an inventory compensation before giving up
	releaseRetries = 3
	releaseBackoff = 50 * time.Millisecond
)

type CirculationService struct {
	log       *zap.Logger
	inventory repository.InventoryRepository
	loans     repository.LoanRepository
	gateway   NotificationGateway
	breaker   cb.CircuitBreaker
	producer  sarama.SyncProducer
	now       func() time.Time
}

func NewCirculationService(
	inventory repository.InventoryRepository,
	loans repository.LoanRepository,
	gateway NotificationGateway,
	breaker cb.CircuitBreaker,
	producer sarama.SyncProducer,
	log *zap.Logger,
) *CirculationService {
	return &CirculationService{
		log:       log.Named("circulation"),
		inventory: inventory,
		loans:     loans,
		gateway:   gateway,
		breaker:   breaker,
		producer:  producer,
		now:       time.Now,
	}
}

// IssueBook reserves a copy first and only then creates the loan record, so
// an unavailable or missing book never produces a dangling loan. If the
// record cannot be created after the copy was reserved, the reservation is
// rolled back; on success exactly one issued loan exists and availability
// dropped by exactly one.
func (s *CirculationService) IssueBook(ctx context.Context, req model.IssueBookRequest) (model.Loan, error) {
	dueDate := req.IssueDate.AddDate(0, 0, defaultLoanDays)
	var expected *time.Time
	if req.ExpectedReturnDate != nil {
		expected = &req.ExpectedReturnDate.Time
		dueDate = req.ExpectedReturnDate.Time
	}

	if err := s.inventory.ReserveCopy(ctx, req.BookID); err != nil {
		return model.Loan{}, err
	}

	loan, err := s.loans.CreateLoan(ctx, model.Loan{
		BookID:             req.BookID,
		AccessionNumber:    req.AccessionNumber,
		EmployeeName:       req.EmployeeName,
		EmployeeNumber:     req.EmployeeNumber,
		EmployeeEmail:      req.EmployeeEmail,
		EmployeePhone:      req.EmployeePhone,
		IssueDate:          req.IssueDate.Time,
		DueDate:            dueDate,
		ExpectedReturnDate: expected,
		Status:             model.StatusIssued,
	})
	if err != nil {
		if rbErr := s.releaseWithRetries(ctx, req.BookID); rbErr != nil {
			s.log.Error("issue rollback failed, inventory undercounted",
				zap.Int("bookID", req.BookID), zap.Error(rbErr))
			return model.Loan{}, errors.Wrap(errs.ErrReconciliation, rbErr.Error())
		}
		return model.Loan{}, err
	}

	s.publish(loan.LoanUid, loan.BookID, kafka.ActionIssued)
	return loan, nil
}

// ReturnBook marks the loan returned before touching inventory: a loan that
// is missing or already returned aborts the operation with no counter
// change. Once the transition is committed it is never reverted; if the
// release cannot be persisted the caller gets a reconciliation error for
// manual correction.
func (s *CirculationService) ReturnBook(ctx context.Context, loanID, bookID int) (model.Loan, error) {
	loan, err := s.loans.GetLoan(ctx, loanID)
	if err != nil {
		return model.Loan{}, err
	}
	if loan.BookID != bookID {
		return model.Loan{}, errors.Wrap(errs.ErrNotFound, "loan does not reference this book")
	}

	loan, err = s.loans.MarkReturned(ctx, loanID, s.now().UTC())
	if err != nil {
		return model.Loan{}, err
	}

	if err := s.releaseWithRetries(ctx, loan.BookID); err != nil {
		s.log.Error("release failed after confirmed return, inventory undercounted",
			zap.Int("loanID", loanID), zap.Int("bookID", loan.BookID), zap.Error(err))
		return model.Loan{}, errors.Wrap(errs.ErrReconciliation, err.Error())
	}

	s.publish(loan.LoanUid, loan.BookID, kafka.ActionReturned)
	return loan, nil
}

// SendReminder sets the reminder flag only after the gateway confirms
// delivery, so a failed send can always be retried.
func (s *CirculationService) SendReminder(ctx context.Context, loanID int) error {
	loan, err := s.loans.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	book, err := s.inventory.GetBook(ctx, loan.BookID)
	if err != nil {
		return err
	}

	subject := "SmartLib Reminder: Book Return Due"
	body := fmt.Sprintf("<p>Hello, the book <b>%s</b> is due on <b>%s</b>. Please return it to avoid fines.</p>",
		book.Name, loan.DueDate.Format("Mon Jan 02 2006"))

	if err := s.breaker.Call(func() error {
		return s.gateway.Send(loan.EmployeeEmail, subject, body)
	}); err != nil {
		return errors.Wrap(errs.ErrGatewayFailure, err.Error())
	}

	if err := s.loans.SetReminderSent(ctx, loanID); err != nil {
		return err
	}
	s.publish(loan.LoanUid, loan.BookID, kafka.ActionReminded)
	return nil
}

func (s *CirculationService) ListLoans(ctx context.Context) ([]model.LoanDetail, error) {
	return s.loans.ListLoans(ctx)
}

func (s *CirculationService) UpdateLoan(ctx context.Context, id int, req model.UpdateLoanRequest) (model.Loan, error) {
	return s.loans.UpdateLoan(ctx, id, req)
}

func (s *CirculationService) releaseWithRetries(ctx context.Context, bookID int) error {
	var err error
	for attempt := 0; attempt < releaseRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(releaseBackoff)
		}
		if err = s.inventory.ReleaseCopy(ctx, bookID); err == nil {
			return nil
		}
	}
	return err
}

func (s *CirculationService) publish(loanUid string, bookID int, action kafka.Action) {
	if s.producer == nil {
		return
	}
	event := kafka.EventCirculation{
		LoanUid:    loanUid,
		BookID:     bookID,
		Action:     action,
		OccurredAt: s.now().UTC(),
	}
	if err := kafka.Publish(s.producer, kafka.CirculationTopic, event); err != nil {
		s.log.Warn("publish circulation event", zap.Error(err))
	}
}
