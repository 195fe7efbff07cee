package sqlstore

import (
	"context"
	"strings"

	"biblios/internal/domain/book"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	return translate(r.db.WithContext(ctx).Create(b).Error, "book")
}

func (r *BookRepository) Save(ctx context.Context, b *book.Book) error {
	return translate(r.db.WithContext(ctx).Save(b).Error, "book")
}

func (r *BookRepository) GetByID(ctx context.Context, id string) (*book.Book, error) {
	var out book.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, "book")
	}
	return &out, nil
}

// SQLite ignores the locking clause; there the single writer connection
// serializes transactions instead.
func (r *BookRepository) GetByIDForUpdate(ctx context.Context, id string) (*book.Book, error) {
	var out book.Book
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate(err, "book")
	}
	return &out, nil
}

func (r *BookRepository) ExistsISBN(ctx context.Context, libraryID, isbn, excludeID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&book.Book{}).Where("library_id = ? AND isbn = ?", libraryID, isbn)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, translate(err, "book")
	}
	return n > 0, nil
}

func (r *BookRepository) List(ctx context.Context, q book.Query) ([]book.Book, error) {
	db := r.db.WithContext(ctx).Model(&book.Book{})
	if q.LibraryID != "" {
		db = db.Where("library_id = ?", q.LibraryID)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pat := likePattern(s)
		db = db.Where("(LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ?)", pat, pat, pat)
	}
	if q.Category != "" {
		db = db.Where("category = ?", q.Category)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	var out []book.Book
	if err := paginate(db, q.Limit, q.Offset).Order("title ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "books")
	}
	return out, nil
}

func (r *BookRepository) Count(ctx context.Context, libraryID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&book.Book{}).Where("library_id = ?", libraryID).Count(&n).Error
	return n, translate(err, "books")
}

func (r *BookRepository) SumCopies(ctx context.Context, libraryID string) (int64, int64, error) {
	var row struct {
		Total     int64
		Available int64
	}
	err := r.db.WithContext(ctx).Model(&book.Book{}).
		Select("COALESCE(SUM(total_copies), 0) AS total, COALESCE(SUM(available_copies), 0) AS available").
		Where("library_id = ?", libraryID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, translate(err, "books")
	}
	return row.Total, row.Available, nil
}

func (r *BookRepository) Categories(ctx context.Context, libraryID string) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&book.Book{}).
		Where("library_id = ? AND category <> ''", libraryID).
		Distinct().
		Order("category ASC").
		Pluck("category", &out).Error
	if err != nil {
		return nil, translate(err, "categories")
	}
	return out, nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&book.Book{})
	if res.Error != nil {
		return translate(res.Error, "book")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "book")
	}
	return nil
}

func (r *BookRepository) DeleteByLibrary(ctx context.Context, libraryID string) error {
	return translate(r.db.WithContext(ctx).Where("library_id = ?", libraryID).Delete(&book.Book{}).Error, "books")
}
