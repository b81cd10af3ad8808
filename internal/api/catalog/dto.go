package catalog

import (
	"encoding/json"

	"yamdb/internal/domain/catalog"
)

type SlugDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SlugRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type TitleDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *float64  `json:"rating"`
	Description *string   `json:"description"`
	Genre       []SlugDTO `json:"genre"`
	Category    *SlugDTO  `json:"category"`
}

// CreateTitleRequest references genres and the category by slug. The category may be omitted.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required,notfuture"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre" binding:"required,dive,slug"`
	Category    string   `json:"category" binding:"omitempty,slug"`
}

type UpdateTitleRequest struct {
	Name        *string      `json:"name" binding:"omitempty,max=256"`
	Year        *int         `json:"year" binding:"omitempty,notfuture"`
	Description *string      `json:"description"`
	Genre       *[]string    `json:"genre" binding:"omitempty,dive,slug"`
	Category    NullableSlug `json:"category"`
}

// NullableSlug tells an absent field apart from an explicit null.
type NullableSlug struct {
	Set   bool
	Value *string
}

func (n *NullableSlug) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func categoryDTO(c catalog.Category) SlugDTO {
	return SlugDTO{Name: c.Name, Slug: c.Slug}
}

func genreDTO(g catalog.Genre) SlugDTO {
	return SlugDTO{Name: g.Name, Slug: g.Slug}
}

func toTitleDTO(t catalog.Title, rating *float64) TitleDTO {
	dto := TitleDTO{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]SlugDTO, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		dto.Genre = append(dto.Genre, genreDTO(g))
	}
	if t.Category != nil {
		c := categoryDTO(*t.Category)
		dto.Category = &c
	}
	return dto
}
