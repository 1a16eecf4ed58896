package ledger

import (
	"errors"
	"strings"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateGroup validates and stores a new group, registering its members.
// A missing ID or CreatedAt is filled in.
func (e *Engine) CreateGroup(group models.Group) (models.Group, error) {
	group = group.Clone()
	group.Name = strings.TrimSpace(group.Name)

	if err := e.validate.Struct(group); err != nil {
		return models.Group{}, e.reject("create_group", fromValidator(err), "group_name", group.Name)
	}
	if err := checkDistinct(group.Members); err != nil {
		return models.Group{}, e.reject("create_group", err, "group_name", group.Name)
	}
	if err := e.checkUsers(group.Members); err != nil {
		return models.Group{}, e.reject("create_group", err, "group_name", group.Name)
	}

	if group.ID == "" {
		group.ID = e.newID()
	} else if _, err := e.store.GetGroup(group.ID); err == nil {
		return models.Group{}, e.reject("create_group", invalid("id", "group %s already exists", group.ID))
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = e.now().Unix()
	}

	if err := e.store.CreateGroup(group); err != nil {
		return models.Group{}, err
	}
	e.registerUsers(group.Members)

	e.logger.Info("Group created",
		"group_id", group.ID,
		"name", group.Name,
		"members_count", len(group.Members),
		"currency", group.Currency,
	)
	return group.Clone(), nil
}

// GetGroup returns the group with the given ID.
func (e *Engine) GetGroup(groupID string) (models.Group, error) {
	group, err := e.store.GetGroup(groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Group{}, notFound("group", groupID)
	}
	return group, err
}

// ListGroups returns every group in creation order.
func (e *Engine) ListGroups() []models.Group {
	return e.store.ListGroups()
}

// AddMembers appends users to a group. Users already in the group are skipped.
func (e *Engine) AddMembers(groupID string, users ...models.User) (models.Group, error) {
	group, err := e.GetGroup(groupID)
	if err != nil {
		return models.Group{}, e.reject("add_members", err, "group_id", groupID)
	}
	if err := e.checkUsers(users); err != nil {
		return models.Group{}, e.reject("add_members", err, "group_id", groupID)
	}

	var added []string
	for _, u := range users {
		if group.HasMember(u.ID) {
			continue
		}
		group.Members = append(group.Members, u)
		added = append(added, u.ID)
	}
	if len(added) == 0 {
		return group, nil
	}

	if err := e.store.UpdateGroup(group); err != nil {
		return models.Group{}, err
	}
	e.registerUsers(users)

	e.logger.Info("Members added to group", "group_id", groupID, "new_members", added)
	return group, nil
}

// RemoveMember takes a user out of a group. A member who paid or holds a
// split in any of the group's expenses cannot be removed, and neither can
// the last member.
func (e *Engine) RemoveMember(groupID, userID string) (models.Group, error) {
	group, err := e.GetGroup(groupID)
	if err != nil {
		return models.Group{}, e.reject("remove_member", err, "group_id", groupID)
	}
	if !group.HasMember(userID) {
		return models.Group{}, e.reject("remove_member", notFound("member", userID), "group_id", groupID)
	}
	if len(group.Members) == 1 {
		return models.Group{}, e.reject("remove_member", invalid("members", "cannot remove the last member"), "group_id", groupID)
	}
	for _, exp := range e.store.ListExpenses(groupID) {
		_, hasSplit := exp.Split(userID)
		if exp.PaidBy == userID || hasSplit {
			return models.Group{}, e.reject("remove_member",
				invalid("members", "user %s is part of expense %s", userID, exp.ID),
				"group_id", groupID)
		}
	}

	members := group.Members[:0]
	for _, m := range group.Members {
		if m.ID != userID {
			members = append(members, m)
		}
	}
	group.Members = members

	if err := e.store.UpdateGroup(group); err != nil {
		return models.Group{}, err
	}

	e.logger.Info("Member removed from group", "group_id", groupID, "user_id", userID)
	return group, nil
}

func checkDistinct(members []models.User) error {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.ID] {
			return invalid("members", "duplicate member %s", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}
