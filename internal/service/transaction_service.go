package service

import (
	"context"
	"strings"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/budgetbook/budgetbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(ledgerID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ledgerID, event)
	}
}

// TransactionInput holds the fields accepted when creating or replacing a transaction
type TransactionInput struct {
	Type          string
	Name          string
	Purpose       string
	Amount        decimal.Decimal
	DueDate       *time.Time
	RepeatPattern string
	EndDate       *time.Time
	Website       *string
	Email         *string
	Telephone     *string
}

// TransactionDetail is a transaction with its labelled display attributes
type TransactionDetail struct {
	Transaction *domain.Transaction `json:"transaction"`
	Attributes  []domain.Attribute  `json:"attributes"`
}

func trimOptional(s *string, max int) (*string, error) {
	if s == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > max {
		return nil, domain.ErrContactTooLong
	}
	return &trimmed, nil
}

// build validates input and fills a transaction for the given ledger
func (s *TransactionService) build(ledgerID int32, userID uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxTransactionNameLength {
		return nil, domain.ErrNameTooLong
	}

	purpose := strings.TrimSpace(input.Purpose)
	if len(purpose) > domain.MaxTransactionPurposeLength {
		return nil, domain.ErrPurposeTooLong
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	kind, err := recurrence.ParseKind(input.Type)
	if err != nil {
		return nil, domain.ErrInvalidTransactionType
	}

	pattern := recurrence.PatternOneOff
	if strings.TrimSpace(input.RepeatPattern) != "" {
		pattern, err = recurrence.ParsePattern(input.RepeatPattern)
		if err != nil {
			return nil, domain.ErrInvalidRepeatPattern
		}
	}

	now := s.now().UTC()
	dueDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	website, err := trimOptional(input.Website, domain.MaxContactLength)
	if err != nil {
		return nil, err
	}
	email, err := trimOptional(input.Email, domain.MaxContactLength)
	if err != nil {
		return nil, err
	}
	telephone, err := trimOptional(input.Telephone, domain.MaxTelephoneLength)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		LedgerID:      ledgerID,
		UserID:        userID,
		Type:          kind,
		Name:          name,
		Purpose:       purpose,
		Amount:        input.Amount,
		DueDate:       dueDate,
		RepeatPattern: pattern,
		EndDate:       input.EndDate,
		Website:       website,
		Email:         email,
		Telephone:     telephone,
	}

	if err := transaction.Schedule().Validate(); err != nil {
		return nil, err
	}
	return transaction, nil
}

// CreateTransaction validates and stores a new transaction in the ledger
func (s *TransactionService) CreateTransaction(ctx context.Context, ledgerID int32, userID uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	transaction, err := s.build(ledgerID, userID, input)
	if err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(ctx, transaction)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to create transaction")
		return nil, err
	}

	s.publishEvent(ledgerID, websocket.TransactionCreated(created))
	return created, nil
}

// GetTransaction returns a transaction with its display attributes
func (s *TransactionService) GetTransaction(ctx context.Context, ledgerID int32, id int32) (*TransactionDetail, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, ledgerID, id)
	if err != nil {
		return nil, err
	}
	return &TransactionDetail{
		Transaction: transaction,
		Attributes:  transaction.Attributes(),
	}, nil
}

// ListTransactions lists a ledger's transactions, optionally of one type.
// txType accepts the singular kind or the list name ("expenses", "incomes", "loans").
func (s *TransactionService) ListTransactions(ctx context.Context, ledgerID int32, txType string) ([]*domain.Transaction, error) {
	filters := &domain.TransactionFilters{}
	if txType = strings.TrimSpace(txType); txType != "" {
		kind, err := recurrence.ParseKind(strings.TrimSuffix(strings.ToLower(txType), "s"))
		if err != nil {
			return nil, domain.ErrInvalidTransactionType
		}
		filters.Type = &kind
	}
	return s.transactionRepo.ListByLedger(ctx, ledgerID, filters)
}

// UpdateTransaction replaces the editable fields of a transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, ledgerID int32, id int32, input TransactionInput) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, ledgerID, id)
	if err != nil {
		return nil, err
	}

	if input.DueDate == nil {
		input.DueDate = &existing.DueDate
	}

	transaction, err := s.build(ledgerID, existing.UserID, input)
	if err != nil {
		return nil, err
	}
	transaction.ID = id

	updated, err := s.transactionRepo.Update(ctx, transaction)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Int32("transaction_id", id).Msg("Failed to update transaction")
		return nil, err
	}

	s.publishEvent(ledgerID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction soft deletes a transaction
func (s *TransactionService) DeleteTransaction(ctx context.Context, ledgerID int32, id int32) error {
	if err := s.transactionRepo.SoftDelete(ctx, ledgerID, id); err != nil {
		return err
	}

	s.publishEvent(ledgerID, websocket.TransactionDeleted(map[string]interface{}{"id": id}))
	return nil
}
