package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

var ErrNoHousehold = errors.New("not a member of any household")

type HouseholdService interface {
	Create(ctx context.Context, name string) (*models.Household, error)
	Join(ctx context.Context, invitationCode string) (*models.Household, error)
	Leave(ctx context.Context) error
	RemoveMember(ctx context.Context, userID string) error
	// Current returns the cached household or ErrNoHousehold.
	Current(ctx context.Context) (*models.Household, error)
	Members(ctx context.Context) ([]models.User, error)
	Refresh(ctx context.Context) error
}

type HouseholdClient interface {
	CreateHousehold(ctx context.Context, name string) (*models.Household, error)
	JoinHousehold(ctx context.Context, invitationCode string) (*models.Household, error)
	LeaveHousehold(ctx context.Context, householdID string) error
	RemoveMember(ctx context.Context, householdID, userID string) error
}

// Synced is the part of a sync repository the services use.
type Synced[T models.Entity] interface {
	FetchAndReconcile(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, scopeID string) ([]T, error)
}

type ScopeWiper interface {
	DeleteScope(ctx context.Context, scopeID string) error
}

type householdService struct {
	client      HouseholdClient
	users       Synced[models.User]
	households  Synced[models.Household]
	memberships Synced[models.Membership]
	local       LocalUserStore
	wiper       ScopeWiper
	logger      logging.Logger
}

func NewHouseholdService(
	client HouseholdClient,
	users Synced[models.User],
	households Synced[models.Household],
	memberships Synced[models.Membership],
	local LocalUserStore,
	wiper ScopeWiper,
	logger logging.Logger,
) HouseholdService {
	return &householdService{
		client:      client,
		users:       users,
		households:  households,
		memberships: memberships,
		local:       local,
		wiper:       wiper,
		logger:      logger.With("module", "household"),
	}
}

func (s *householdService) Create(ctx context.Context, name string) (*models.Household, error) {
	h, err := s.client.CreateHousehold(ctx, name)
	if err != nil {
		return nil, err
	}
	return h, s.Refresh(ctx)
}

func (s *householdService) Join(ctx context.Context, invitationCode string) (*models.Household, error) {
	h, err := s.client.JoinHousehold(ctx, invitationCode)
	if err != nil {
		return nil, err
	}
	return h, s.Refresh(ctx)
}

// Leave leaves the household remotely, then drops everything cached for it.
func (s *householdService) Leave(ctx context.Context) error {
	userID, householdID, err := s.membership(ctx)
	if err != nil {
		return err
	}

	if err := s.client.LeaveHousehold(ctx, householdID); err != nil {
		return err
	}
	if err := s.wiper.DeleteScope(ctx, householdID); err != nil {
		return err
	}

	s.logger.Info(ctx, "left household", "household_id", householdID)
	return s.users.FetchAndReconcile(ctx, userID)
}

// RemoveMember removes userID remotely and re-fetches what the removal
// changed, which evicts the member's records from the cache.
func (s *householdService) RemoveMember(ctx context.Context, userID string) error {
	_, householdID, err := s.membership(ctx)
	if err != nil {
		return err
	}

	if err := s.client.RemoveMember(ctx, householdID, userID); err != nil {
		return err
	}
	if err := s.memberships.FetchAndReconcile(ctx, models.MembershipID(householdID, userID)); err != nil {
		return err
	}
	if err := s.users.FetchAndReconcile(ctx, userID); err != nil {
		return err
	}
	return s.households.FetchAndReconcile(ctx, householdID)
}

func (s *householdService) Current(ctx context.Context) (*models.Household, error) {
	_, householdID, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}
	h, err := s.households.Get(ctx, householdID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, ErrNoHousehold
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *householdService) Members(ctx context.Context) ([]models.User, error) {
	_, householdID, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.List(ctx, householdID)
}

// Refresh pulls the own user record, the household, and every member with
// their membership into the cache.
func (s *householdService) Refresh(ctx context.Context) error {
	userID, err := s.local.LocalUserID(ctx)
	if err != nil {
		return err
	}
	if userID == "" {
		return common.ErrUnauthorized
	}

	if err := s.users.FetchAndReconcile(ctx, userID); err != nil {
		return err
	}
	_, householdID, err := s.membership(ctx)
	if errors.Is(err, ErrNoHousehold) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.households.FetchAndReconcile(ctx, householdID); err != nil {
		return err
	}
	h, err := s.households.Get(ctx, householdID)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, memberID := range h.MemberIDs {
		if memberID != userID {
			if err := s.users.FetchAndReconcile(ctx, memberID); err != nil {
				return err
			}
		}
		if err := s.memberships.FetchAndReconcile(ctx, models.MembershipID(householdID, memberID)); err != nil {
			return err
		}
	}
	return nil
}

// membership returns the signed-in user and their household, read from the
// cached user record.
func (s *householdService) membership(ctx context.Context) (string, string, error) {
	userID, err := s.local.LocalUserID(ctx)
	if err != nil {
		return "", "", err
	}
	if userID == "" {
		return "", "", common.ErrUnauthorized
	}

	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return userID, "", ErrNoHousehold
	}
	if err != nil {
		return "", "", err
	}
	if u.HouseholdID == "" {
		return userID, "", ErrNoHousehold
	}
	return userID, u.HouseholdID, nil
}
