package domain

import (
	"errors"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultPageLimit = 6
	MaxPageLimit     = 100
	MaxPage          = 1_000_000
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

type (
	// Requester identifies who is calling a service. A zero value is an
	// anonymous caller.
	Requester struct {
		UserID string
		Role   string
	}

	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func (r Requester) IsAnonymous() bool {
	return r.UserID == ""
}

func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// ID returns the requester's user id. Anonymous callers and malformed ids
// yield ErrUnauthorized.
func (r Requester) ID() (uuid.UUID, error) {
	if r.IsAnonymous() {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(r.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

// ParseID parses a path id. An id that is not a UUID cannot name a stored
// row, so it fails with notFound.
func ParseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

// NormalizePage clamps page and limit query values to usable bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageOffset is the row offset of a page normalized by NormalizePage.
func PageOffset(page, limit int) int {
	return (page - 1) * limit
}
