package tag

import (
	"context"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/logging"

	"github.com/rs/zerolog"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTag(ctx context.Context, id string) (domain.TagResponse, error)
		CreateTag(ctx context.Context, requester domain.Requester, req domain.CreateTagRequest) (domain.TagResponse, error)
		DeleteTag(ctx context.Context, requester domain.Requester, id string) error
	}

	tagService struct {
		tagRepository TagRepository
		policy        authz.Policy
		log           zerolog.Logger
	}
)

func NewTagService(tagRepository TagRepository, policy authz.Policy) TagService {
	return &tagService{
		tagRepository: tagRepository,
		policy:        policy,
		log:           logging.Component("tag"),
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, toTagResponse(tag))
	}
	return res, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (domain.TagResponse, error) {
	tagID, err := domain.ParseID(id, domain.ErrTagNotFound)
	if err != nil {
		return domain.TagResponse{}, err
	}

	tag, err := s.tagRepository.GetTagByID(ctx, tagID)
	if err != nil {
		return domain.TagResponse{}, err
	}
	return toTagResponse(tag), nil
}

// CreateTag stores colors upper-cased so "#e26c2d" and "#E26C2D" collide on
// the unique index.
func (s *tagService) CreateTag(ctx context.Context, requester domain.Requester, req domain.CreateTagRequest) (domain.TagResponse, error) {
	if err := s.policy.Authorize(requester, authz.ObjectTag, authz.ActionCreate, ""); err != nil {
		return domain.TagResponse{}, err
	}

	tag := &entities.Tag{
		Name:  strings.TrimSpace(req.Name),
		Slug:  req.Slug,
		Color: strings.ToUpper(req.Color),
	}
	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}

	s.log.Info().Str("tag_id", tag.ID.String()).Str("slug", tag.Slug).Msg("tag created")
	return toTagResponse(tag), nil
}

func (s *tagService) DeleteTag(ctx context.Context, requester domain.Requester, id string) error {
	if err := s.policy.Authorize(requester, authz.ObjectTag, authz.ActionWrite, ""); err != nil {
		return err
	}

	tagID, err := domain.ParseID(id, domain.ErrTagNotFound)
	if err != nil {
		return err
	}
	return s.tagRepository.DeleteTag(ctx, tagID)
}

func toTagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    tag.ID.String(),
		Name:  tag.Name,
		Slug:  tag.Slug,
		Color: tag.Color,
	}
}
