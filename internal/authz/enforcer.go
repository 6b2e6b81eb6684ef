// Package authz decides whether a requester may act on a resource. The
// decision is pure policy over the requester identity and the owner of the
// target; nothing is persisted.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"Foodgram-Backend/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	ObjectIngredient = "ingredient"
	ObjectTag        = "tag"
	ObjectRecipe     = "recipe"
	ObjectMembership = "membership"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionWrite  = "write"

	SubjectAnonymous = "anonymous"
	SubjectUser      = "user"
	SubjectOwner     = "owner"
	SubjectAdmin     = "admin"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

type (
	Policy interface {
		Authorize(requester domain.Requester, object, action, ownerID string) error
	}

	Enforcer struct {
		enforcer *casbin.SyncedEnforcer
	}
)

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := loadPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: enforcer}, nil
}

func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var err error
		switch {
		case parts[0] == "p" && len(parts) == 4:
			_, err = enforcer.AddPolicy(parts[1], parts[2], parts[3])
		case parts[0] == "g" && len(parts) == 3:
			_, err = enforcer.AddGroupingPolicy(parts[1], parts[2])
		default:
			err = fmt.Errorf("malformed policy line %q", line)
		}
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}
	}
	return nil
}

// Subjects lists every relationship the requester has with a target owned
// by ownerID. An empty ownerID means the target has no owner.
func Subjects(requester domain.Requester, ownerID string) []string {
	if requester.IsAnonymous() {
		return []string{SubjectAnonymous}
	}

	subjects := []string{SubjectUser}
	if ownerID != "" && ownerID == requester.UserID {
		subjects = append(subjects, SubjectOwner)
	}
	if requester.IsAdmin() {
		subjects = append(subjects, SubjectAdmin)
	}
	return subjects
}

// Authorize returns nil when any of the requester's subjects is allowed,
// domain.ErrUnauthorized for a denied anonymous requester and
// domain.ErrForbidden otherwise.
func (e *Enforcer) Authorize(requester domain.Requester, object, action, ownerID string) error {
	for _, sub := range Subjects(requester, ownerID) {
		ok, err := e.enforcer.Enforce(sub, object, action)
		if err != nil {
			return fmt.Errorf("enforce %s %s %s: %w", sub, object, action, err)
		}
		if ok {
			return nil
		}
	}

	if requester.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	return fmt.Errorf("%w: %s %s", domain.ErrForbidden, action, object)
}
