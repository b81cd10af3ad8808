package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"
	"yamdb/internal/importer"
	"yamdb/internal/logging"
	"yamdb/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = map[string]string{
	"category.csv": "id,name,slug\n1,Фильм,movie\n2,Книга,book\n",
	"genre.csv":    "id,name,slug\n1,Драма,drama\n2,Комедия,comedy\n",
	// Columns in a different order than the model, with a quoted comma.
	"titles.csv":      "id,year,name,category\n1,1994,\"Shawshank, The\",1\n2,1869,War and Peace,2\n",
	"genre_title.csv": "id,title_id,genre_id\n1,1,1\n2,2,1\n3,2,2\n",
	"users.csv":       "id,username,email,role,bio,first_name,last_name\n100,bingobongo,bingo@yamdb.fake,user,,,\n101,capt_obvious,capt@yamdb.fake,admin,,,\n",
	"review.csv":      "id,title_id,text,author,score,pub_date\n1,1,Hope is a good thing,100,10,2019-09-24T21:08:21.567Z\n2,1,Overrated,101,6,2019-09-25T10:00:00Z\n",
	"comments.csv":    "id,review_id,text,author,pub_date\n1,1,Agreed,101,2019-09-26T08:00:00Z\n",
}

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestImportDir_All(t *testing.T) {
	db := testutils.SetupTestDB(t)
	dir := writeFixtures(t, fixtures)

	results, err := importer.New(db, logging.L).ImportDir(context.Background(), dir, nil)
	require.NoError(t, err)

	var files []string
	for _, r := range results {
		files = append(files, r.File)
	}
	assert.Equal(t, importer.Order, files)

	var title catalog.Title
	require.NoError(t, db.Preload("Genres").Preload("Category").First(&title, 2).Error)
	assert.Equal(t, "War and Peace", title.Name)
	assert.Equal(t, "book", title.Category.Slug)
	assert.Len(t, title.Genres, 2)

	var shawshank catalog.Title
	require.NoError(t, db.First(&shawshank, 1).Error)
	assert.Equal(t, "Shawshank, The", shawshank.Name)

	var admin users.User
	require.NoError(t, db.Where("username = ?", "capt_obvious").First(&admin).Error)
	assert.Equal(t, users.RoleAdmin, admin.Role)
	assert.Equal(t, users.StatusPending, admin.Status)

	var review reviews.Review
	require.NoError(t, db.First(&review, 1).Error)
	assert.Equal(t, uint(100), review.AuthorID)
	assert.Equal(t, 2019, review.PubDate.Year())

	var n int64
	db.Model(&reviews.Comment{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestImportDir_NamedFilesRunInDependencyOrder(t *testing.T) {
	db := testutils.SetupTestDB(t)
	dir := writeFixtures(t, fixtures)

	results, err := importer.New(db, logging.L).ImportDir(context.Background(), dir, []string{"titles.csv", "category.csv"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "category.csv", results[0].File)
	assert.Equal(t, "titles.csv", results[1].File)
	assert.Equal(t, 2, results[1].Rows)
}

func TestImportDir_Errors(t *testing.T) {
	db := testutils.SetupTestDB(t)
	im := importer.New(db, logging.L)

	_, err := im.ImportDir(context.Background(), writeFixtures(t, fixtures), []string{"movies.csv"})
	assert.ErrorContains(t, err, "unknown fixture file")

	_, err = im.ImportDir(context.Background(), t.TempDir(), nil)
	assert.ErrorContains(t, err, "no fixture files")

	bad := writeFixtures(t, map[string]string{
		"category.csv": "id,name,slug\n1,Films,films\n",
		"titles.csv":   "id,name,year,category\n1,Old,1999,1\n2,New,3000,1\n",
	})
	_, err = im.ImportDir(context.Background(), bad, nil)
	assert.ErrorContains(t, err, "line 3")

	var n int64
	db.Model(&catalog.Title{}).Count(&n)
	assert.Zero(t, n, "a failed file imports nothing")
}

func TestImportDir_StripsByteOrderMark(t *testing.T) {
	db := testutils.SetupTestDB(t)
	dir := writeFixtures(t, map[string]string{
		"category.csv": "\ufeffid,name,slug\n1,Films,films\n",
	})

	_, err := importer.New(db, logging.L).ImportDir(context.Background(), dir, nil)
	require.NoError(t, err)

	var category catalog.Category
	require.NoError(t, db.First(&category, 1).Error)
	assert.Equal(t, "films", category.Slug)
}
