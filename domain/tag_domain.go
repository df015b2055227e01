package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags   = "tags retrieved successfully"
	MessageSuccessCreateTag = "tag created successfully"
	MessageSuccessGetTag    = "tag retrieved successfully"
	MessageSuccessUpdateTag = "tag updated successfully"

	MessageFailedGetTags   = "failed to retrieve tags"
	MessageFailedCreateTag = "failed to create tag"
	MessageFailedGetTag    = "failed to retrieve tag"
	MessageFailedUpdateTag = "failed to update tag"
	MessageFailedDeleteTag = "failed to delete tag"

	ErrTagNotFound = errors.New("tag not found")
)

type (
	CreateTagRequest struct {
		Name string `json:"name" validate:"required"`
	}

	UpdateTagRequest struct {
		Name *string `json:"name" validate:"omitempty,min=1"`
	}

	TagResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
