package sqlstore

import (
	"context"
	"strings"

	"biblios/internal/domain/member"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "member")
}

func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	return translate(r.db.WithContext(ctx).Save(m).Error, "member")
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*member.Member, error) {
	var out member.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, "member")
	}
	return &out, nil
}

func (r *MemberRepository) GetByIDForUpdate(ctx context.Context, id string) (*member.Member, error) {
	var out member.Member
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate(err, "member")
	}
	return &out, nil
}

func (r *MemberRepository) List(ctx context.Context, q member.Query) ([]member.Member, error) {
	db := r.db.WithContext(ctx).Model(&member.Member{})
	if q.LibraryID != "" {
		db = db.Where("library_id = ?", q.LibraryID)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pat := likePattern(s)
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?)", pat, pat, pat)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	var out []member.Member
	if err := paginate(db, q.Limit, q.Offset).Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "members")
	}
	return out, nil
}

func (r *MemberRepository) CountByStatus(ctx context.Context, libraryID string, status member.Status) (int64, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(&member.Member{}).Where("library_id = ?", libraryID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Count(&n).Error
	return n, translate(err, "members")
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&member.Member{})
	if res.Error != nil {
		return translate(res.Error, "member")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "member")
	}
	return nil
}

func (r *MemberRepository) DeleteByLibrary(ctx context.Context, libraryID string) error {
	return translate(r.db.WithContext(ctx).Where("library_id = ?", libraryID).Delete(&member.Member{}).Error, "members")
}
