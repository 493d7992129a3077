package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// MediaInput is a catalog title as submitted by a participant.
type MediaInput struct {
	ID         string   `json:"media_id" validate:"required,max=64"`
	Type       string   `json:"media_type" validate:"required,oneof=movie tv"`
	Title      string   `json:"title" validate:"max=512"`
	PosterPath string   `json:"poster_path" validate:"max=512"`
	Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

func (in MediaInput) toMedia() (domain.Media, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Title = strings.TrimSpace(in.Title)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Media{}, domain.NewValidationError(toSnake(verrs[0].Field()), fmt.Sprintf("failed %q check", verrs[0].Tag()))
		}
		return domain.Media{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return domain.Media{
		MediaRef: domain.MediaRef{
			ID:   in.ID,
			Type: domain.MediaType(in.Type),
		},
		Title:      in.Title,
		PosterPath: in.PosterPath,
		Rating:     in.Rating,
	}, nil
}

func toSnake(field string) string {
	switch field {
	case "ID":
		return "media_id"
	case "Type":
		return "media_type"
	case "PosterPath":
		return "poster_path"
	default:
		return strings.ToLower(field)
	}
}
