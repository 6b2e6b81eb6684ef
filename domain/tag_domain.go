package domain

import "fmt"

var (
	MessageSuccessGetTags   = "success get tags"
	MessageSuccessGetTag    = "success get tag"
	MessageSuccessCreateTag = "tag created successfully"
	MessageSuccessDeleteTag = "tag deleted successfully"

	MessageFailedGetTags   = "failed to get tags"
	MessageFailedGetTag    = "failed to get tag"
	MessageFailedCreateTag = "failed to create tag"
	MessageFailedDeleteTag = "failed to delete tag"

	ErrTagNotFound = fmt.Errorf("%w: tag not found", ErrNotFound)
	ErrTagExists   = fmt.Errorf("%w: tag slug or color already used", ErrConflict)
)

type (
	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=100"`
		Slug  string `json:"slug" validate:"required,max=100,slug"`
		Color string `json:"color" validate:"required,hexcolor,len=7"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Color string `json:"color"`
	}
)
