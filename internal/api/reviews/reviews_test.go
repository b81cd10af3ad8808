package reviews_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"
	"yamdb/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewBody struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

type commentBody struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

type page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

type fixture struct {
	db    *gorm.DB
	r     *gin.Engine
	title *catalog.Title
}

func setup(t *testing.T) fixture {
	t.Helper()
	testutils.SetupTestConfig(t)
	db := testutils.SetupTestDB(t)
	return fixture{db: db, r: testutils.NewRouter(t), title: testutils.CreateTestTitle(db)}
}

func reviewsPath(titleID uint) string {
	return fmt.Sprintf("/api/v1/titles/%d/reviews", titleID)
}

func reviewPath(titleID, reviewID uint) string {
	return fmt.Sprintf("/api/v1/titles/%d/reviews/%d", titleID, reviewID)
}

func commentsPath(titleID, reviewID uint) string {
	return reviewPath(titleID, reviewID) + "/comments"
}

func TestCreateReview(t *testing.T) {
	f := setup(t)
	author := testutils.CreateTestUser(f.db, testutils.WithUsername("critic"))
	token := testutils.AccessToken(t, author)

	w := testutils.Do(f.r, http.MethodPost, reviewsPath(f.title.ID), gin.H{"text": "Great", "score": 9}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.Do(f.r, http.MethodPost, reviewsPath(f.title.ID), gin.H{"text": "Great", "score": 9}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := testutils.Decode[reviewBody](t, w)
	assert.Equal(t, "critic", body.Author)
	assert.Equal(t, 9, body.Score)
	assert.False(t, body.PubDate.IsZero())

	w = testutils.Do(f.r, http.MethodPost, reviewsPath(f.title.ID), gin.H{"text": "Again", "score": 3}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	f.db.Model(&reviews.Review{}).Count(&n)
	assert.EqualValues(t, 1, n)

	other := testutils.CreateTestTitle(f.db)
	w = testutils.Do(f.r, http.MethodPost, reviewsPath(other.ID), gin.H{"text": "Also fine", "score": 6}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReview_Validation(t *testing.T) {
	f := setup(t)
	token := testutils.AccessToken(t, testutils.CreateTestUser(f.db))

	for _, body := range []gin.H{
		{"text": "x", "score": 0},
		{"text": "x", "score": 11},
		{"text": "x"},
		{"score": 5},
	} {
		w := testutils.Do(f.r, http.MethodPost, reviewsPath(f.title.ID), body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	w := testutils.Do(f.r, http.MethodPost, reviewsPath(9999), gin.H{"text": "x", "score": 5}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewObjectPermissions(t *testing.T) {
	f := setup(t)
	author := testutils.CreateTestUser(f.db)
	review := testutils.CreateTestReview(f.db, f.title, author, 5)

	tests := []struct {
		name   string
		user   *users.User
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"stranger", testutils.CreateTestUser(f.db), http.StatusForbidden},
		{"author", author, http.StatusOK},
		{"moderator", testutils.CreateTestUser(f.db, testutils.WithRole(users.RoleModerator)), http.StatusOK},
		{"admin", testutils.CreateTestUser(f.db, testutils.WithRole(users.RoleAdmin)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ""
			if tt.user != nil {
				token = testutils.AccessToken(t, tt.user)
			}
			w := testutils.Do(f.r, http.MethodPatch, reviewPath(f.title.ID, review.ID), gin.H{"score": 8}, token)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := testutils.Do(f.r, http.MethodGet, reviewPath(f.title.ID, review.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, testutils.Decode[reviewBody](t, w).Score)
}

func TestReview_WrongTitleIsNotFound(t *testing.T) {
	f := setup(t)
	review := testutils.CreateTestReview(f.db, f.title, testutils.CreateTestUser(f.db), 5)
	other := testutils.CreateTestTitle(f.db)

	w := testutils.Do(f.r, http.MethodGet, reviewPath(other.ID, review.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = testutils.Do(f.r, http.MethodGet, reviewPath(f.title.ID, review.ID+100), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReview_RemovesComments(t *testing.T) {
	f := setup(t)
	author := testutils.CreateTestUser(f.db)
	review := testutils.CreateTestReview(f.db, f.title, author, 5)
	testutils.CreateTestComment(f.db, review, testutils.CreateTestUser(f.db))

	w := testutils.Do(f.r, http.MethodDelete, reviewPath(f.title.ID, review.ID), nil, testutils.AccessToken(t, author))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	var n int64
	f.db.Model(&reviews.Comment{}).Count(&n)
	assert.Zero(t, n)
}

func TestRatingFollowsReviewChanges(t *testing.T) {
	f := setup(t)
	author := testutils.CreateTestUser(f.db)
	review := testutils.CreateTestReview(f.db, f.title, author, 4)
	testutils.CreateTestReview(f.db, f.title, testutils.CreateTestUser(f.db), 8)
	token := testutils.AccessToken(t, author)

	rating := func() *float64 {
		w := testutils.Do(f.r, http.MethodGet, fmt.Sprintf("/api/v1/titles/%d", f.title.ID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		return testutils.Decode[struct {
			Rating *float64 `json:"rating"`
		}](t, w).Rating
	}

	require.NotNil(t, rating())
	assert.InDelta(t, 6.0, *rating(), 1e-9)

	w := testutils.Do(f.r, http.MethodPatch, reviewPath(f.title.ID, review.ID), gin.H{"score": 10}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 9.0, *rating(), 1e-9)

	w = testutils.Do(f.r, http.MethodDelete, reviewPath(f.title.ID, review.ID), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.InDelta(t, 8.0, *rating(), 1e-9)
}

func TestListReviews_NewestFirst(t *testing.T) {
	f := setup(t)
	var ids []uint
	for i := 0; i < 6; i++ {
		ids = append(ids, testutils.CreateTestReview(f.db, f.title, testutils.CreateTestUser(f.db), 5).ID)
	}

	w := testutils.Do(f.r, http.MethodGet, reviewsPath(f.title.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	p := testutils.Decode[page[reviewBody]](t, w)
	assert.EqualValues(t, 6, p.Count)
	require.Len(t, p.Results, 5)
	assert.Equal(t, ids[5], p.Results[0].ID)
}

func TestComments(t *testing.T) {
	f := setup(t)
	reviewer := testutils.CreateTestUser(f.db)
	review := testutils.CreateTestReview(f.db, f.title, reviewer, 7)
	commenter := testutils.CreateTestUser(f.db, testutils.WithUsername("chatty"))
	token := testutils.AccessToken(t, commenter)

	w := testutils.Do(f.r, http.MethodPost, commentsPath(f.title.ID, review.ID), gin.H{"text": "Agreed"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutils.Decode[commentBody](t, w)
	assert.Equal(t, "chatty", created.Author)

	w = testutils.Do(f.r, http.MethodPost, commentsPath(f.title.ID, review.ID), gin.H{"text": ""}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("%s/%d", commentsPath(f.title.ID, review.ID), created.ID)

	w = testutils.Do(f.r, http.MethodPatch, path, gin.H{"text": "Hijacked"}, testutils.AccessToken(t, reviewer))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutils.Do(f.r, http.MethodPatch, path, gin.H{"text": "Strongly agreed"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Strongly agreed", testutils.Decode[commentBody](t, w).Text)

	w = testutils.Do(f.r, http.MethodGet, commentsPath(f.title.ID, review.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, testutils.Decode[page[commentBody]](t, w).Count)

	other := testutils.CreateTestReview(f.db, f.title, testutils.CreateTestUser(f.db), 2)
	w = testutils.Do(f.r, http.MethodGet, fmt.Sprintf("%s/%d", commentsPath(f.title.ID, other.ID), created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	mod := testutils.CreateTestUser(f.db, testutils.WithRole(users.RoleModerator))
	w = testutils.Do(f.r, http.MethodDelete, path, nil, testutils.AccessToken(t, mod))
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testutils.Do(f.r, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListComments_OldestFirst(t *testing.T) {
	f := setup(t)
	review := testutils.CreateTestReview(f.db, f.title, testutils.CreateTestUser(f.db), 7)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	late := testutils.CreateTestCommentAt(f.db, review, testutils.CreateTestUser(f.db), base.Add(time.Hour))
	early := testutils.CreateTestCommentAt(f.db, review, testutils.CreateTestUser(f.db), base)

	w := testutils.Do(f.r, http.MethodGet, commentsPath(f.title.ID, review.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	p := testutils.Decode[page[commentBody]](t, w)
	require.Len(t, p.Results, 2)
	assert.Equal(t, early.ID, p.Results[0].ID)
	assert.Equal(t, late.ID, p.Results[1].ID)
}
