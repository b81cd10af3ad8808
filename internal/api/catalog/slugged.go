package catalog

import (
	"errors"
	"net/http"

	"yamdb/database"
	"yamdb/internal/api/apierr"
	"yamdb/internal/api/pagination"
	"yamdb/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /categories
func ListCategories(c *gin.Context) {
	listSlugged(c, categoryDTO)
}

// POST /categories
func CreateCategory(c *gin.Context) {
	createSlugged(c, func(r SlugRequest) catalog.Category {
		return catalog.Category{Name: r.Name, Slug: r.Slug}
	}, categoryDTO)
}

// DELETE /categories/:slug
// Titles in the category keep existing with no category.
func DeleteCategory(c *gin.Context) {
	var category catalog.Category
	if !findBySlug(c, &category, "Category not found") {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&catalog.Title{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /genres
func ListGenres(c *gin.Context) {
	listSlugged(c, genreDTO)
}

// POST /genres
func CreateGenre(c *gin.Context) {
	createSlugged(c, func(r SlugRequest) catalog.Genre {
		return catalog.Genre{Name: r.Name, Slug: r.Slug}
	}, genreDTO)
}

// DELETE /genres/:slug
// Titles lose the genre but are otherwise untouched.
func DeleteGenre(c *gin.Context) {
	var genre catalog.Genre
	if !findBySlug(c, &genre, "Genre not found") {
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", genre.ID).Delete(&catalog.TitleGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&genre).Error
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func listSlugged[M any](c *gin.Context, toDTO func(M) SlugDTO) {
	var model M
	q := database.DB.WithContext(c.Request.Context()).Model(&model)
	if search := c.Query("search"); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	q = q.Order("id ASC")

	page, err := pagination.Find(c, q, pagination.PageSize, func(rows []M) ([]SlugDTO, error) {
		out := make([]SlugDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, toDTO(r))
		}
		return out, nil
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func createSlugged[M any](c *gin.Context, build func(SlugRequest) M, toDTO func(M) SlugDTO) {
	var req SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.Respond(c, err)
		return
	}

	model := build(req)
	if err := database.DB.WithContext(c.Request.Context()).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apierr.Respond(c, apierr.Field("slug", "this slug is already taken"))
			return
		}
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDTO(model))
}

func findBySlug(c *gin.Context, dest any, notFound string) bool {
	err := database.DB.WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierr.Respond(c, apierr.NotFound(notFound))
			return false
		}
		apierr.Respond(c, err)
		return false
	}
	return true
}
