package testutils

import (
	"fmt"
	"strings"
	"time"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestUser creates an active user with a unique username and email.
func CreateTestUser(db *gorm.DB, opts ...UserOption) *users.User {
	uniqueID := uuid.NewString()

	u := &users.User{
		Username:     fmt.Sprintf("test_user_%s", uniqueID),
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		Role:         users.RoleUser,
		Status:       users.StatusActive,
		StateVersion: 1,
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

// UserOption configures a test user.
type UserOption func(*users.User)

func WithUsername(username string) UserOption {
	return func(u *users.User) {
		u.Username = username
	}
}

func WithEmail(email string) UserOption {
	return func(u *users.User) {
		u.Email = email
	}
}

func WithRole(role users.Role) UserOption {
	return func(u *users.User) {
		u.Role = role
	}
}

// WithSuperuser marks the user as a superuser, keeping the role as given.
func WithSuperuser() UserOption {
	return func(u *users.User) {
		u.IsSuperuser = true
	}
}

// Pending leaves the user unconfirmed.
func Pending() UserOption {
	return func(u *users.User) {
		u.Status = users.StatusPending
	}
}

func CreateTestCategory(db *gorm.DB, slug string) *catalog.Category {
	c := &catalog.Category{Name: strings.ToUpper(slug[:1]) + slug[1:], Slug: slug}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test category: %v", err))
	}
	return c
}

func CreateTestGenre(db *gorm.DB, slug string) *catalog.Genre {
	g := &catalog.Genre{Name: strings.ToUpper(slug[:1]) + slug[1:], Slug: slug}
	if err := db.Create(g).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test genre: %v", err))
	}
	return g
}

// CreateTestTitle creates a title from 1999 with no category or genres unless options add them.
func CreateTestTitle(db *gorm.DB, opts ...TitleOption) *catalog.Title {
	t := &catalog.Title{
		Name: fmt.Sprintf("Title %s", uuid.NewString()[:8]),
		Year: 1999,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := db.Omit("Category", "Genres.*").Create(t).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test title: %v", err))
	}
	return t
}

type TitleOption func(*catalog.Title)

func WithName(name string) TitleOption {
	return func(t *catalog.Title) {
		t.Name = name
	}
}

func WithYear(year int) TitleOption {
	return func(t *catalog.Title) {
		t.Year = year
	}
}

func WithCategory(c *catalog.Category) TitleOption {
	return func(t *catalog.Title) {
		t.CategoryID = &c.ID
	}
}

func WithGenres(genres ...*catalog.Genre) TitleOption {
	return func(t *catalog.Title) {
		for _, g := range genres {
			t.Genres = append(t.Genres, *g)
		}
	}
}

func CreateTestReview(db *gorm.DB, title *catalog.Title, author *users.User, score int) *reviews.Review {
	r := &reviews.Review{
		TitleID:  title.ID,
		AuthorID: author.ID,
		Text:     fmt.Sprintf("review by %s", author.Username),
		Score:    score,
	}
	if err := db.Omit("Title", "Author").Create(r).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test review: %v", err))
	}
	return r
}

// CreateTestCommentAt creates a comment with an explicit publication time.
func CreateTestCommentAt(db *gorm.DB, review *reviews.Review, author *users.User, at time.Time) *reviews.Comment {
	c := &reviews.Comment{
		ReviewID: review.ID,
		AuthorID: author.ID,
		Text:     fmt.Sprintf("comment by %s", author.Username),
		PubDate:  at,
	}
	if err := db.Omit("Review", "Author").Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test comment: %v", err))
	}
	return c
}

func CreateTestComment(db *gorm.DB, review *reviews.Review, author *users.User) *reviews.Comment {
	return CreateTestCommentAt(db, review, author, time.Time{})
}
