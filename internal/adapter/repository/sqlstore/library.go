package sqlstore

import (
	"context"

	"biblios/internal/domain/library"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LibraryRepository struct{ db *gorm.DB }

func NewLibraryRepository(db *gorm.DB) *LibraryRepository { return &LibraryRepository{db: db} }

func (r *LibraryRepository) Create(ctx context.Context, l *library.Library) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, "library")
}

func (r *LibraryRepository) Save(ctx context.Context, l *library.Library) error {
	// the active flag belongs to Activate alone
	return translate(r.db.WithContext(ctx).Omit("active").Save(l).Error, "library")
}

func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*library.Library, error) {
	var out library.Library
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, "library")
	}
	return &out, nil
}

func (r *LibraryRepository) GetByIDForUpdate(ctx context.Context, id string) (*library.Library, error) {
	var out library.Library
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate(err, "library")
	}
	return &out, nil
}

func (r *LibraryRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&library.Library{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, translate(err, "library")
	}
	return n > 0, nil
}

func (r *LibraryRepository) List(ctx context.Context) ([]library.Library, error) {
	var out []library.Library
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "libraries")
	}
	return out, nil
}

func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&library.Library{})
	if res.Error != nil {
		return translate(res.Error, "library")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "library")
	}
	return nil
}

// Activate upserts the selection row and rewrites every active flag with a
// single statement, inside one transaction (a savepoint when nested).
func (r *LibraryRepository) Activate(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sel := library.Selection{ID: library.SelectionRowID, LibraryID: id}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"library_id", "updated_at"}),
		}).Create(&sel).Error; err != nil {
			return err
		}
		return tx.Model(&library.Library{}).
			Where("1 = 1").
			Update("active", gorm.Expr("id = ?", id)).
			Error
	})
	return translate(err, "library selection")
}

func (r *LibraryRepository) ActiveID(ctx context.Context) (string, error) {
	var sel library.Selection
	if err := r.db.WithContext(ctx).Where("id = ?", library.SelectionRowID).First(&sel).Error; err != nil {
		return "", translate(err, "active library")
	}
	return sel.LibraryID, nil
}

func (r *LibraryRepository) ClearSelection(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", library.SelectionRowID).Delete(&library.Selection{}).Error; err != nil {
			return err
		}
		return tx.Model(&library.Library{}).Where("active = ?", true).Update("active", false).Error
	})
	return translate(err, "library selection")
}
