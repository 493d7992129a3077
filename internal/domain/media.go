package domain

import (
	"fmt"
	"strings"
)

type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType accepts "movie" and "tv". Empty input is a validation error;
// the catalog's "multi" search type is not a stored media type.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeMovie:
		return MediaTypeMovie, nil
	case MediaTypeTV:
		return MediaTypeTV, nil
	case "":
		return "", NewValidationError("media_type", "is required")
	default:
		return "", NewValidationError("media_type", fmt.Sprintf("%q is not supported", s))
	}
}

// MediaRef identifies a catalog title by id and type. The same numeric id can
// refer to a movie and to a tv show, so both parts are always compared.
type MediaRef struct {
	ID   string
	Type MediaType
}

// NewMediaRef normalizes raw input into a validated reference.
func NewMediaRef(id, mediaType string) (MediaRef, error) {
	ref := MediaRef{ID: strings.TrimSpace(id)}
	if ref.ID == "" {
		return MediaRef{}, NewValidationError("media_id", "is required")
	}
	t, err := ParseMediaType(mediaType)
	if err != nil {
		return MediaRef{}, err
	}
	ref.Type = t
	return ref, nil
}

func (m MediaRef) Key() string {
	return string(m.Type) + ":" + m.ID
}

func (m MediaRef) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return NewValidationError("media_id", "is required")
	}
	if _, err := ParseMediaType(string(m.Type)); err != nil {
		return err
	}
	return nil
}

// Media is a catalog title as shown to participants.
type Media struct {
	MediaRef
	Title      string
	PosterPath string
	Rating     *float64
}
