package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// LedgerService manages groups and which ledger a user works in
type LedgerService struct {
	userRepo   domain.UserRepository
	ledgerRepo domain.LedgerRepository
	publisher  websocket.EventPublisher
	hashCost   int
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository) *LedgerService {
	return &LedgerService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		hashCost:   bcrypt.DefaultCost,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.publisher = publisher
}

// GroupSummary is a group as listed to one of its members
type GroupSummary struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	MemberCount int32  `json:"memberCount"`
	Active      bool   `json:"active"`
}

func normalizeGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxGroupNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

func validateGroupPassword(password string) error {
	if password == "" {
		return domain.ErrPasswordRequired
	}
	if len(password) < domain.MinGroupPasswordLength || len(password) > domain.MaxGroupPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", domain.ErrInvalidInput, domain.MinGroupPasswordLength, domain.MaxGroupPasswordLength)
	}
	return nil
}

// RegisterGroup creates a group owned by the user and makes it their active ledger
func (s *LedgerService) RegisterGroup(ctx context.Context, userID uuid.UUID, name, password string) (*domain.Ledger, error) {
	name, err := normalizeGroupName(name)
	if err != nil {
		return nil, err
	}
	if err := validateGroupPassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash group password: %w", err)
	}

	group, err := s.ledgerRepo.Create(ctx, &domain.Ledger{
		Kind:         domain.LedgerKindGroup,
		OwnerID:      userID,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrGroupNameTaken) {
			log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create group")
		}
		return nil, err
	}

	if err := s.activate(ctx, userID, group.ID); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Int32("ledger_id", group.ID).Msg("Group registered")
	return group, nil
}

// JoinGroup adds the user to a group after checking its password, then activates it
func (s *LedgerService) JoinGroup(ctx context.Context, userID uuid.UUID, name, password string) (*domain.Ledger, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	group, err := s.ledgerRepo.GetGroupByName(ctx, name)
	if err != nil {
		return nil, err
	}

	member, err := s.ledgerRepo.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, domain.ErrAlreadyMember
	}

	if err := bcrypt.CompareHashAndPassword([]byte(group.PasswordHash), []byte(password)); err != nil {
		log.Info().Str("user_id", userID.String()).Int32("ledger_id", group.ID).Msg("Wrong group password")
		return nil, domain.ErrWrongGroupPassword
	}

	group, err = s.ledgerRepo.AddMember(ctx, group.ID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.activate(ctx, userID, group.ID); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(group.ID, websocket.GroupMemberJoined(map[string]interface{}{
			"name":        group.Name,
			"memberCount": group.MemberCount,
		}))
	}

	log.Info().Str("user_id", userID.String()).Int32("ledger_id", group.ID).Msg("Joined group")
	return group, nil
}

// ListGroups lists the user's groups, flagging the active one
func (s *LedgerService) ListGroups(ctx context.Context, userID uuid.UUID, activeLedgerID int32) ([]GroupSummary, error) {
	groups, err := s.ledgerRepo.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]GroupSummary, len(groups))
	for i, g := range groups {
		result[i] = GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			MemberCount: g.MemberCount,
			Active:      g.ID == activeLedgerID,
		}
	}
	return result, nil
}

// GroupNames returns the names of the user's groups
func (s *LedgerService) GroupNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	groups, err := s.ledgerRepo.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names, nil
}

// SelectGroup makes one of the user's groups their active ledger
func (s *LedgerService) SelectGroup(ctx context.Context, userID uuid.UUID, name string) (*domain.Ledger, error) {
	group, err := s.ledgerRepo.GetGroupByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	member, err := s.ledgerRepo.IsMember(ctx, group.ID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrNotMember
	}

	if err := s.activate(ctx, userID, group.ID); err != nil {
		return nil, err
	}
	return group, nil
}

// SwitchToPersonal makes the user's personal ledger active again
func (s *LedgerService) SwitchToPersonal(ctx context.Context, userID uuid.UUID) (*domain.Ledger, error) {
	personal, err := s.ledgerRepo.GetPersonal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetActiveLedger(ctx, userID, nil); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		s.publisher.Follow(userID, personal.ID)
	}
	return personal, nil
}

func (s *LedgerService) activate(ctx context.Context, userID uuid.UUID, ledgerID int32) error {
	if err := s.userRepo.SetActiveLedger(ctx, userID, &ledgerID); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Int32("ledger_id", ledgerID).Msg("Failed to set active ledger")
		return err
	}
	if s.publisher != nil {
		s.publisher.Follow(userID, ledgerID)
	}
	return nil
}
