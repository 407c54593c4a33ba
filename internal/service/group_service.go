package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/storage"
)

// GroupService validates and manages group lifecycle and membership.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup validates and creates a group.
//
// The name must be non-empty after trimming. Member IDs are
// deduplicated and the caller is always added; every referenced user
// must exist (fail-fast on the first missing one). The caller becomes
// the admin, everyone else a plain member, all with the same join
// timestamp. Validation completes fully before the single insert.
func (s *GroupService) CreateGroup(ctx context.Context, principal *models.User, name, description string, memberIDs []string) (*models.Group, error) {
	slog.Info("CreateGroup request",
		"principal", principal.ID,
		"name", name,
		"members_count", len(memberIDs),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidGroupName
	}

	// Dedup into a set that unconditionally contains the caller.
	// Order is preserved for deterministic fail-fast reporting.
	ordered := []string{principal.ID}
	seen := map[string]bool{principal.ID: true}
	for _, id := range memberIDs {
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}

	users, err := s.store.GetUsersByIDs(ctx, ordered)
	if err != nil {
		return nil, err
	}
	for _, id := range ordered {
		if users[id] == nil {
			return nil, &UnknownUserError{ID: id}
		}
	}

	now := time.Now().Unix()
	members := make([]models.Member, len(ordered))
	for i, id := range ordered {
		role := models.RoleMember
		if id == principal.ID {
			role = models.RoleAdmin
		}
		members[i] = models.Member{UserID: id, Role: role, JoinedAt: now}
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   principal.ID,
		Members:     members,
		CreatedAt:   now,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(members))
	return group, nil
}

// GetGroup retrieves a group. Only members may view it.
func (s *GroupService) GetGroup(ctx context.Context, principal *models.User, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(principal.ID) {
		return nil, ErrNotAGroupMember
	}
	return group, nil
}

// DeleteGroup removes a group. Only an admin may delete, and deletion
// is rejected while any expense still references the group.
func (s *GroupService) DeleteGroup(ctx context.Context, principal *models.User, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsAdmin(principal.ID) {
		return ErrNotGroupAdmin
	}

	count, err := s.store.CountGroupExpenses(ctx, groupID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupHasExpenses
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// AddMembers adds users to a group's roster. Only an admin may add.
// IDs already on the roster are skipped; every new ID must resolve to
// an existing user.
func (s *GroupService) AddMembers(ctx context.Context, principal *models.User, groupID string, memberIDs []string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsAdmin(principal.ID) {
		return nil, ErrNotGroupAdmin
	}

	var newIDs []string
	seen := make(map[string]bool)
	for _, id := range memberIDs {
		if !seen[id] && !group.IsMember(id) {
			seen[id] = true
			newIDs = append(newIDs, id)
		}
	}
	if len(newIDs) == 0 {
		return group, nil
	}

	users, err := s.store.GetUsersByIDs(ctx, newIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range newIDs {
		if users[id] == nil {
			return nil, &UnknownUserError{ID: id}
		}
	}

	now := time.Now().Unix()
	members := make([]models.Member, len(newIDs))
	for i, id := range newIDs {
		members[i] = models.Member{UserID: id, Role: models.RoleMember, JoinedAt: now}
	}
	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Members added", "group_id", groupID, "added_count", len(members))
	return s.store.GetGroup(ctx, groupID)
}

// RemoveMember removes a user from a group's roster. Only an admin may
// remove, and the creator can never be removed.
func (s *GroupService) RemoveMember(ctx context.Context, principal *models.User, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsAdmin(principal.ID) {
		return ErrNotGroupAdmin
	}
	if userID == group.CreatedBy {
		return ErrCreatorRemoval
	}
	if !group.IsMember(userID) {
		return ErrNotAGroupMember
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		slog.Error("RemoveMember failed", "group_id", groupID, "user_id", userID, "error", err)
		return err
	}
	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	return nil
}
