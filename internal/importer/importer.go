// Package importer bulk-loads CSV fixture files into the database.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"yamdb/internal/domain/catalog"
	"yamdb/internal/domain/reviews"
	"yamdb/internal/domain/users"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const batchSize = 200

// Order lists the known files parents first, so foreign keys resolve.
var Order = []string{
	"category.csv",
	"genre.csv",
	"titles.csv",
	"genre_title.csv",
	"users.csv",
	"review.csv",
	"comments.csv",
}

type table struct {
	name string
	load func(rows []record) (any, error)
}

var tables = map[string]table{
	"category.csv":    {"categories", loadCategories},
	"genre.csv":       {"genres", loadGenres},
	"titles.csv":      {"titles", loadTitles},
	"genre_title.csv": {"title_genres", loadTitleGenres},
	"users.csv":       {"users", loadUsers},
	"review.csv":      {"reviews", loadReviews},
	"comments.csv":    {"comments", loadComments},
}

// Result is the outcome of importing one file.
type Result struct {
	File     string
	Rows     int
	Duration time.Duration
}

type Importer struct {
	db  *gorm.DB
	log *log.Logger
}

func New(db *gorm.DB, logger *log.Logger) *Importer {
	return &Importer{db: db, log: logger}
}

// ImportDir imports files from dir. With no names given it imports every known file present in
// dir; named files are imported in dependency order regardless of the order given.
func (im *Importer) ImportDir(ctx context.Context, dir string, names []string) ([]Result, error) {
	selected, err := selectFiles(dir, names)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(selected))
	for _, name := range selected {
		res, err := im.ImportFile(ctx, filepath.Join(dir, name))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ImportFile loads one file inside a transaction. The table is chosen by the file's base name.
func (im *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	name := filepath.Base(path)
	res := Result{File: name}

	t, ok := tables[name]
	if !ok {
		return res, fmt.Errorf("%s: unknown fixture file", name)
	}

	f, err := os.Open(path)
	if err != nil {
		return res, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := readRecords(f)
	if err != nil {
		return res, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(rows) == 0 {
		im.log.Warn("empty fixture file", "file", name)
		return res, nil
	}

	models, err := t.load(rows)
	if err != nil {
		return res, fmt.Errorf("%s: %w", name, err)
	}

	err = im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).CreateInBatches(models, batchSize).Error; err != nil {
			return err
		}
		return resetSequence(tx, t.name)
	})
	if err != nil {
		return res, fmt.Errorf("import %s: %w", name, err)
	}

	res.Rows = len(rows)
	res.Duration = time.Since(start)
	im.log.Info("imported fixture", "file", name, "rows", res.Rows, "duration", res.Duration)
	return res, nil
}

func selectFiles(dir string, names []string) ([]string, error) {
	wanted := map[string]bool{}
	for _, n := range names {
		if _, ok := tables[n]; !ok {
			return nil, fmt.Errorf("%s: unknown fixture file (known: %s)", n, strings.Join(Order, ", "))
		}
		wanted[n] = true
	}

	var selected []string
	for _, n := range Order {
		if len(names) > 0 {
			if wanted[n] {
				selected = append(selected, n)
			}
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, n)); err == nil {
			selected = append(selected, n)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no fixture files found in %s", dir)
	}
	return selected, nil
}

// resetSequence moves a PostgreSQL serial past explicitly imported ids.
func resetSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" || table == "title_genres" {
		return nil
	}
	q := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
		table,
	)
	if err := tx.Exec(q).Error; err != nil {
		return fmt.Errorf("reset %s id sequence: %w", table, err)
	}
	return nil
}

func loadCategories(rows []record) (any, error) {
	out := make([]catalog.Category, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if err := catalog.ValidateSlug(r.str("slug")); err != nil {
			return nil, rowErr(i, err)
		}
		out = append(out, catalog.Category{ID: id, Name: r.str("name"), Slug: r.str("slug")})
	}
	return &out, nil
}

func loadGenres(rows []record) (any, error) {
	out := make([]catalog.Genre, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if err := catalog.ValidateSlug(r.str("slug")); err != nil {
			return nil, rowErr(i, err)
		}
		out = append(out, catalog.Genre{ID: id, Name: r.str("name"), Slug: r.str("slug")})
	}
	return &out, nil
}

func loadTitles(rows []record) (any, error) {
	now := time.Now()
	out := make([]catalog.Title, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		year, err := r.integer("year")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if err := catalog.ValidateYear(year, now); err != nil {
			return nil, rowErr(i, err)
		}
		category, err := r.optID("category")
		if err != nil {
			return nil, rowErr(i, err)
		}

		t := catalog.Title{ID: id, Name: r.str("name"), Year: year, CategoryID: category}
		if d := r.str("description"); d != "" {
			t.Description = &d
		}
		out = append(out, t)
	}
	return &out, nil
}

func loadTitleGenres(rows []record) (any, error) {
	out := make([]catalog.TitleGenre, 0, len(rows))
	for i, r := range rows {
		titleID, err := r.id("title_id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		genreID, err := r.id("genre_id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		out = append(out, catalog.TitleGenre{TitleID: titleID, GenreID: genreID})
	}
	return &out, nil
}

// loadUsers imports accounts as pending; they activate through the normal signup flow.
func loadUsers(rows []record) (any, error) {
	out := make([]users.User, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if err := users.ValidateUsername(r.str("username")); err != nil {
			return nil, rowErr(i, err)
		}
		role := users.RoleUser
		if raw := strings.TrimSpace(r.str("role")); raw != "" {
			if role, err = users.ParseRole(raw); err != nil {
				return nil, rowErr(i, err)
			}
		}
		out = append(out, users.User{
			ID:           id,
			Username:     r.str("username"),
			Email:        r.str("email"),
			FirstName:    r.str("first_name"),
			LastName:     r.str("last_name"),
			Bio:          r.str("bio"),
			Role:         role,
			Status:       users.StatusPending,
			StateVersion: 1,
		})
	}
	return &out, nil
}

func loadReviews(rows []record) (any, error) {
	out := make([]reviews.Review, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		titleID, err := r.id("title_id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		author, err := r.id("author")
		if err != nil {
			return nil, rowErr(i, err)
		}
		score, err := r.integer("score")
		if err != nil {
			return nil, rowErr(i, err)
		}
		if err := reviews.ValidateScore(score); err != nil {
			return nil, rowErr(i, err)
		}
		pub, err := r.timestamp("pub_date")
		if err != nil {
			return nil, rowErr(i, err)
		}
		out = append(out, reviews.Review{
			ID:       id,
			TitleID:  titleID,
			AuthorID: author,
			Text:     r.str("text"),
			Score:    score,
			PubDate:  pub,
		})
	}
	return &out, nil
}

func loadComments(rows []record) (any, error) {
	out := make([]reviews.Comment, 0, len(rows))
	for i, r := range rows {
		id, err := r.id("id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		reviewID, err := r.id("review_id")
		if err != nil {
			return nil, rowErr(i, err)
		}
		author, err := r.id("author")
		if err != nil {
			return nil, rowErr(i, err)
		}
		pub, err := r.timestamp("pub_date")
		if err != nil {
			return nil, rowErr(i, err)
		}
		out = append(out, reviews.Comment{
			ID:       id,
			ReviewID: reviewID,
			AuthorID: author,
			Text:     r.str("text"),
			PubDate:  pub,
		})
	}
	return &out, nil
}

// rowErr reports a 0-based data row as its 1-based line in the file.
func rowErr(i int, err error) error {
	return fmt.Errorf("line %d: %w", i+2, err)
}
