package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.AddUser(user)
	return user, nil
}

// SetActiveLedger records the user's active ledger; nil means personal
func (m *MockUserRepository) SetActiveLedger(ctx context.Context, userID uuid.UUID, ledgerID *int32) error {
	user, ok := m.ByID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.ActiveLedgerID = ledgerID
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository
type MockLedgerRepository struct {
	Ledgers  map[int32]*domain.Ledger
	Members  map[int32]map[uuid.UUID]bool
	NextID   int32
	CreateFn func(ledger *domain.Ledger) (*domain.Ledger, error)
}

// NewMockLedgerRepository creates a new MockLedgerRepository
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		Ledgers: make(map[int32]*domain.Ledger),
		Members: make(map[int32]map[uuid.UUID]bool),
		NextID:  1,
	}
}

// GetByID retrieves a ledger by ID
func (m *MockLedgerRepository) GetByID(ctx context.Context, id int32) (*domain.Ledger, error) {
	if ledger, ok := m.Ledgers[id]; ok {
		return ledger, nil
	}
	return nil, domain.ErrLedgerNotFound
}

// GetPersonal retrieves the personal ledger owned by a user
func (m *MockLedgerRepository) GetPersonal(ctx context.Context, userID uuid.UUID) (*domain.Ledger, error) {
	for _, ledger := range m.Ledgers {
		if ledger.Kind == domain.LedgerKindPersonal && ledger.OwnerID == userID {
			return ledger, nil
		}
	}
	return nil, domain.ErrLedgerNotFound
}

// GetGroupByName retrieves a group ledger by its unique name
func (m *MockLedgerRepository) GetGroupByName(ctx context.Context, name string) (*domain.Ledger, error) {
	for _, ledger := range m.Ledgers {
		if ledger.Kind == domain.LedgerKindGroup && ledger.Name == name {
			return ledger, nil
		}
	}
	return nil, domain.ErrLedgerNotFound
}

// Create stores a ledger and records its owner as a member
func (m *MockLedgerRepository) Create(ctx context.Context, ledger *domain.Ledger) (*domain.Ledger, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ledger)
	}
	for _, existing := range m.Ledgers {
		if ledger.Kind == domain.LedgerKindGroup && existing.Kind == domain.LedgerKindGroup && existing.Name == ledger.Name {
			return nil, domain.ErrGroupNameTaken
		}
		if ledger.Kind == domain.LedgerKindPersonal && existing.Kind == domain.LedgerKindPersonal && existing.OwnerID == ledger.OwnerID {
			return nil, domain.ErrAlreadyExists
		}
	}
	ledger.ID = m.NextID
	m.NextID++
	ledger.MemberCount = 1
	ledger.CreatedAt = time.Now()
	ledger.UpdatedAt = ledger.CreatedAt
	m.AddLedger(ledger)
	return ledger, nil
}

// ListGroupsByMember lists the group ledgers a user belongs to, by name
func (m *MockLedgerRepository) ListGroupsByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Ledger, error) {
	result := make([]*domain.Ledger, 0)
	for id, members := range m.Members {
		ledger := m.Ledgers[id]
		if ledger != nil && ledger.IsGroup() && members[userID] {
			result = append(result, ledger)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// IsMember reports whether a user belongs to a ledger
func (m *MockLedgerRepository) IsMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (bool, error) {
	return m.Members[ledgerID][userID], nil
}

// AddMember adds a member and bumps the member count
func (m *MockLedgerRepository) AddMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (*domain.Ledger, error) {
	ledger, ok := m.Ledgers[ledgerID]
	if !ok {
		return nil, domain.ErrLedgerNotFound
	}
	if m.Members[ledgerID][userID] {
		return nil, domain.ErrAlreadyMember
	}
	m.Members[ledgerID][userID] = true
	ledger.MemberCount++
	return ledger, nil
}

// AddLedger adds a ledger with its owner as member (helper for tests)
func (m *MockLedgerRepository) AddLedger(ledger *domain.Ledger) {
	m.Ledgers[ledger.ID] = ledger
	if m.Members[ledger.ID] == nil {
		m.Members[ledger.ID] = make(map[uuid.UUID]bool)
	}
	m.Members[ledger.ID][ledger.OwnerID] = true
	if ledger.ID >= m.NextID {
		m.NextID = ledger.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	ListFn       func(ledgerID int32, filters *domain.TransactionFilters) ([]*domain.Transaction, error)
	UpdateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	SoftDeleteFn func(ledgerID int32, id int32) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	transaction.ID = m.NextID
	m.NextID++
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a live transaction by its ID within a ledger
func (m *MockTransactionRepository) GetByID(ctx context.Context, ledgerID int32, id int32) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.LedgerID != ledgerID || transaction.DeletedAt != nil {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// ListByLedger lists live transactions of a ledger ordered by due date then ID
func (m *MockTransactionRepository) ListByLedger(ctx context.Context, ledgerID int32, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(ledgerID, filters)
	}
	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.LedgerID != ledgerID || t.DeletedAt != nil {
			continue
		}
		if filters != nil && filters.Type != nil && t.Type != *filters.Type {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DueDate.Equal(result[j].DueDate) {
			return result[i].DueDate.Before(result[j].DueDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update replaces a live transaction's editable fields
func (m *MockTransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(transaction)
	}
	existing, err := m.GetByID(ctx, transaction.LedgerID, transaction.ID)
	if err != nil {
		return nil, err
	}
	transaction.UserID = existing.UserID
	transaction.CreatedAt = existing.CreatedAt
	transaction.UpdatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// SoftDelete marks a transaction as deleted
func (m *MockTransactionRepository) SoftDelete(ctx context.Context, ledgerID int32, id int32) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ledgerID, id)
	}
	transaction, err := m.GetByID(ctx, ledgerID, id)
	if err != nil {
		return err
	}
	now := time.Now()
	transaction.DeletedAt = &now
	return nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == 0 {
		transaction.ID = m.NextID
	}
	if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
	m.Transactions[transaction.ID] = transaction
}

// PublishedEvent is one recorded call to MockEventPublisher.Publish
type PublishedEvent struct {
	LedgerID int32
	Event    websocket.Event
}

// FollowCall is one recorded call to MockEventPublisher.Follow
type FollowCall struct {
	UserID   uuid.UUID
	LedgerID int32
}

// MockEventPublisher records events instead of broadcasting them
type MockEventPublisher struct {
	mu      sync.Mutex
	Events  []PublishedEvent
	Follows []FollowCall
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(ledgerID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{LedgerID: ledgerID, Event: event})
}

// Follow records the ledger switch
func (m *MockEventPublisher) Follow(userID uuid.UUID, ledgerID int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Follows = append(m.Follows, FollowCall{UserID: userID, LedgerID: ledgerID})
}

// EventTypes returns the type of every published event in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockObjectStore keeps uploaded objects in memory
type MockObjectStore struct {
	Objects     map[string][]byte
	ContentType map[string]string
	UploadErr   error
	PresignErr  error
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects:     make(map[string][]byte),
		ContentType: make(map[string]string),
	}
}

// Upload stores the object body
func (m *MockObjectStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf.Bytes()
	m.ContentType[objectPath] = contentType
	return objectPath, nil
}

// Delete removes an object
func (m *MockObjectStore) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	delete(m.ContentType, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake link to a stored object
func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	if _, ok := m.Objects[objectPath]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}
