package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionRequest represents the create and update transaction request body
type TransactionRequest struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Purpose       string  `json:"purpose"`
	Amount        string  `json:"amount"`
	DueDate       *string `json:"dueDate,omitempty"`
	RepeatPattern string  `json:"repeatPattern"`
	EndDate       *string `json:"endDate,omitempty"`
	Website       *string `json:"website,omitempty"`
	Email         *string `json:"email,omitempty"`
	Telephone     *string `json:"telephone,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            int32   `json:"id"`
	LedgerID      int32   `json:"ledgerId"`
	UserID        string  `json:"userId"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Purpose       string  `json:"purpose"`
	Amount        string  `json:"amount"`
	DueDate       string  `json:"dueDate"`
	RepeatPattern string  `json:"repeatPattern"`
	EndDate       *string `json:"endDate,omitempty"`
	Website       *string `json:"website,omitempty"`
	Email         *string `json:"email,omitempty"`
	Telephone     *string `json:"telephone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// TransactionDetailResponse is a transaction with its labelled attributes
type TransactionDetailResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Attributes  []domain.Attribute  `json:"attributes"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID,
		LedgerID:      t.LedgerID,
		UserID:        t.UserID.String(),
		Type:          string(t.Type),
		Name:          t.Name,
		Purpose:       t.Purpose,
		Amount:        t.Amount.StringFixed(2),
		DueDate:       t.DueDate.Format("2006-01-02"),
		RepeatPattern: string(t.RepeatPattern),
		Website:       t.Website,
		Email:         t.Email,
		Telephone:     t.Telephone,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.EndDate != nil {
		end := t.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func parseDateField(value *string, field string) (*time.Time, *ValidationError) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "Must be in YYYY-MM-DD format"}
	}
	return &parsed, nil
}

// toInput parses the request body; a non-nil slice means the body is invalid
func (r TransactionRequest) toInput() (service.TransactionInput, []ValidationError) {
	var errs []ValidationError

	amount := decimal.Zero
	if r.Amount != "" {
		parsed, err := decimal.NewFromString(r.Amount)
		if err != nil {
			errs = append(errs, ValidationError{Field: "amount", Message: "Must be a valid decimal number"})
		}
		amount = parsed
	}

	dueDate, verr := parseDateField(r.DueDate, "dueDate")
	if verr != nil {
		errs = append(errs, *verr)
	}
	endDate, verr := parseDateField(r.EndDate, "endDate")
	if verr != nil {
		errs = append(errs, *verr)
	}

	return service.TransactionInput{
		Type:          r.Type,
		Name:          r.Name,
		Purpose:       r.Purpose,
		Amount:        amount,
		DueDate:       dueDate,
		RepeatPattern: r.RepeatPattern,
		EndDate:       endDate,
		Website:       r.Website,
		Email:         r.Email,
		Telephone:     r.Telephone,
	}, errs
}

// transactionFieldErrors maps service validation errors to field errors; nil for anything else
func transactionFieldErrors(err error) []ValidationError {
	var field, message string
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		field, message = "name", "Name is required"
	case errors.Is(err, domain.ErrNameTooLong):
		field, message = "name", "Name must be 200 characters or less"
	case errors.Is(err, domain.ErrPurposeTooLong):
		field, message = "purpose", "Purpose must be 200 characters or less"
	case errors.Is(err, domain.ErrInvalidAmount):
		field, message = "amount", "Amount must be zero or positive"
	case errors.Is(err, domain.ErrInvalidTransactionType):
		field, message = "type", "Type must be one of: income, expense, loan"
	case errors.Is(err, domain.ErrInvalidRepeatPattern):
		field, message = "repeatPattern", "Repeat pattern must be one of: one_off, monthly, weekly, biweekly, triweekly, four_weekly"
	case errors.Is(err, domain.ErrMalformedDateRange):
		field, message = "endDate", "End date must not be before the due date"
	case errors.Is(err, domain.ErrContactTooLong):
		field, message = "contact", "Website and e-mail must be 254 characters or less, telephone 20"
	default:
		return nil
	}
	return []ValidationError{{Field: field, Message: message}}
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create a new income, expense or loan entry in the active ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if len(verrs) > 0 {
		return NewValidationError(c, "Validation failed", verrs)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), ledgerID, middleware.GetUserID(c), input)
	if err != nil {
		if verrs := transactionFieldErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int32("ledger_id", ledgerID).Int32("transaction_id", transaction.ID).Str("name", transaction.Name).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description Lists the active ledger's transactions, optionally of one type
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "income, expense or loan (plural accepted)"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), ledgerID, c.QueryParam("type"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransactionType) {
			return NewValidationError(c, "Invalid type", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense, loan"},
			})
		}
		log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		response[i] = toTransactionResponse(t)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Description Returns a transaction with its display attributes
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} TransactionDetailResponse
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	detail, err := h.transactionService.GetTransaction(c.Request().Context(), ledgerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("ledger_id", ledgerID).Int32("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, TransactionDetailResponse{
		Transaction: toTransactionResponse(detail.Transaction),
		Attributes:  detail.Attributes,
	})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Replaces the editable fields of a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body TransactionRequest true "Transaction fields"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, verrs := req.toInput()
	if len(verrs) > 0 {
		return NewValidationError(c, "Validation failed", verrs)
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), ledgerID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if verrs := transactionFieldErrors(err); verrs != nil {
			return NewValidationError(c, "Validation failed", verrs)
		}
		log.Error().Err(err).Int32("ledger_id", ledgerID).Int32("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	id, ok := parseIDParam(c)
	if !ok {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), ledgerID, id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("ledger_id", ledgerID).Int32("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int32("ledger_id", ledgerID).Int32("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}
