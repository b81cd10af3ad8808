package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/api/pagination"
	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /titles
// Filters: genre and category by slug, name by case-insensitive substring, year exactly.
func ListTitles(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	q := db.Model(&catalog.Title{})

	if genre := c.Query("genre"); genre != "" {
		q = q.Where("id IN (?)", db.Table("title_genres").
			Select("title_genres.title_id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", genre))
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category_id IN (?)", db.Model(&catalog.Category{}).
			Select("id").
			Where("slug = ?", category))
	}
	if name := c.Query("name"); name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			apierr.Respond(c, apierr.Field("year", "must be an integer"))
			return
		}
		q = q.Where("year = ?", year)
	}
	q = q.Order("id ASC")

	page, err := pagination.Find(c, q, pagination.ComplexPageSize, func(rows []catalog.Title) ([]TitleDTO, error) {
		ids := make([]uint, 0, len(rows))
		for _, t := range rows {
			ids = append(ids, t.ID)
		}
		ratings, err := reviews.RatingsFor(c.Request.Context(), database.DB, ids)
		if err != nil {
			return nil, err
		}

		out := make([]TitleDTO, 0, len(rows))
		for _, t := range rows {
			var rating *float64
			if r, ok := ratings[t.ID]; ok {
				rating = &r
			}
			out = append(out, toTitleDTO(t, rating))
		}
		return out, nil
	}, "Genres", "Category")
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /titles/:title_id
func GetTitle(c *gin.Context) {
	title, ok := loadTitle(c)
	if !ok {
		return
	}
	respondTitle(c, http.StatusOK, title)
}

// POST /titles
func CreateTitle(c *gin.Context) {
	var req CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	db := database.DB.WithContext(c.Request.Context())

	genres, err := genresBySlug(db, req.Genre)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	title := catalog.Title{
		Name:        req.Name,
		Year:        *req.Year,
		Description: req.Description,
		Genres:      genres,
	}
	if req.Category != "" {
		category, err := categoryBySlug(db, req.Category)
		if err != nil {
			apierr.Respond(c, err)
			return
		}
		title.CategoryID = &category.ID
	}
	// Genres already exist; only the join rows are written.
	if err := db.Omit("Category", "Genres.*").Create(&title).Error; err != nil {
		apierr.Respond(c, err)
		return
	}

	created, err := findTitle(db, title.ID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	respondTitle(c, http.StatusCreated, created)
}

// PATCH /titles/:title_id
func UpdateTitle(c *gin.Context) {
	var req UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	title, ok := loadTitle(c)
	if !ok {
		return
	}

	db := database.DB.WithContext(c.Request.Context())

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Year != nil {
		changes["year"] = *req.Year
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	switch {
	case !req.Category.Set:
	case req.Category.Value == nil:
		changes["category_id"] = nil
	default:
		if err := catalog.ValidateSlug(*req.Category.Value); err != nil {
			apierr.Respond(c, apierr.Field("category", err.Error()))
			return
		}
		category, err := categoryBySlug(db, *req.Category.Value)
		if err != nil {
			apierr.Respond(c, err)
			return
		}
		changes["category_id"] = category.ID
	}

	var genres []catalog.Genre
	if req.Genre != nil {
		var err error
		if genres, err = genresBySlug(db, *req.Genre); err != nil {
			apierr.Respond(c, err)
			return
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(&catalog.Title{ID: title.ID}).Updates(changes).Error; err != nil {
				return err
			}
		}
		if req.Genre != nil {
			genresOf := tx.Model(&catalog.Title{ID: title.ID}).Association("Genres")
			if len(genres) == 0 {
				if err := genresOf.Clear(); err != nil {
					return fmt.Errorf("clear genres: %w", err)
				}
				return nil
			}
			if err := genresOf.Replace(genres); err != nil {
				return fmt.Errorf("replace genres: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	updated, err := findTitle(db, title.ID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	respondTitle(c, http.StatusOK, updated)
}

// DELETE /titles/:title_id
// Reviews of the title and their comments go with it.
func DeleteTitle(c *gin.Context) {
	title, ok := loadTitle(c)
	if !ok {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := reviews.DeleteForTitle(tx, title.ID); err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", title.ID).Delete(&catalog.TitleGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalog.Title{ID: title.ID}).Error
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// loadTitle resolves :title_id, responding 404 when it does not name a title.
func loadTitle(c *gin.Context) (catalog.Title, bool) {
	id, err := strconv.ParseUint(c.Param("title_id"), 10, 64)
	if err != nil {
		apierr.Respond(c, apierr.NotFound("Title not found"))
		return catalog.Title{}, false
	}

	title, err := findTitle(database.DB.WithContext(c.Request.Context()), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound("Title not found"))
			return title, false
		}
		apierr.Respond(c, err)
		return title, false
	}
	return title, true
}

func findTitle(db *gorm.DB, id uint) (catalog.Title, error) {
	var title catalog.Title
	err := db.Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.id ASC")
	}).Preload("Category").First(&title, id).Error
	return title, err
}

func respondTitle(c *gin.Context, status int, title catalog.Title) {
	rating, err := reviews.RatingFor(c.Request.Context(), database.DB, title.ID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(status, toTitleDTO(title, rating))
}

// genresBySlug loads every named genre, reporting unknown slugs on the "genre" field.
func genresBySlug(db *gorm.DB, slugs []string) ([]catalog.Genre, error) {
	genres := []catalog.Genre{}
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := db.Where("slug IN ?", slugs).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(genres))
	for _, g := range genres {
		known[g.Slug] = true
	}
	var missing []string
	for _, s := range slugs {
		if !known[s] {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return nil, apierr.Field("genre", fmt.Sprintf("unknown genre: %s", strings.Join(missing, ", ")))
	}
	return genres, nil
}

func categoryBySlug(db *gorm.DB, slug string) (catalog.Category, error) {
	var category catalog.Category
	if err := db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category, apierr.Field("category", fmt.Sprintf("unknown category: %s", slug))
		}
		return category, err
	}
	return category, nil
}
