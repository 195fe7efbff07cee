package sqlstore

import (
	"context"
	"time"

	"biblios/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var openStatuses = []loan.Status{loan.StatusActive, loan.StatusOverdue}

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, "loan")
}

func (r *LoanRepository) Save(ctx context.Context, l *loan.Loan) error {
	return translate(r.db.WithContext(ctx).Save(l).Error, "loan")
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loan.Loan, error) {
	var out loan.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, translate(err, "loan")
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id string) (*loan.Loan, error) {
	var out loan.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	if err != nil {
		return nil, translate(err, "loan")
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, q loan.Query) ([]loan.Loan, error) {
	db := r.db.WithContext(ctx).Model(&loan.Loan{})
	if q.LibraryID != "" {
		db = db.Where("library_id = ?", q.LibraryID)
	}
	if q.BookID != "" {
		db = db.Where("book_id = ?", q.BookID)
	}
	if q.MemberID != "" {
		db = db.Where("member_id = ?", q.MemberID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	var out []loan.Loan
	if err := paginate(db, q.Limit, q.Offset).Order("loan_date DESC, id DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "loans")
	}
	return out, nil
}

func (r *LoanRepository) CountByStatus(ctx context.Context, libraryID string, status loan.Status) (int64, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(&loan.Loan{}).Where("library_id = ?", libraryID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Count(&n).Error
	return n, translate(err, "loans")
}

func (r *LoanRepository) CountOpenByBook(ctx context.Context, bookID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("book_id = ? AND status IN ?", bookID, openStatuses).
		Count(&n).Error
	return n, translate(err, "loans")
}

func (r *LoanRepository) CountOpenByMember(ctx context.Context, memberID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("member_id = ? AND status IN ?", memberID, openStatuses).
		Count(&n).Error
	return n, translate(err, "loans")
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("status = ? AND due_date < ?", loan.StatusActive, now.UTC()).
		Update("status", loan.StatusOverdue)
	if res.Error != nil {
		return 0, translate(res.Error, "loans")
	}
	return res.RowsAffected, nil
}

func (r *LoanRepository) DeleteByBook(ctx context.Context, bookID string) error {
	return translate(r.db.WithContext(ctx).Where("book_id = ?", bookID).Delete(&loan.Loan{}).Error, "loans")
}

func (r *LoanRepository) DeleteByMember(ctx context.Context, memberID string) error {
	return translate(r.db.WithContext(ctx).Where("member_id = ?", memberID).Delete(&loan.Loan{}).Error, "loans")
}

func (r *LoanRepository) DeleteByLibrary(ctx context.Context, libraryID string) error {
	return translate(r.db.WithContext(ctx).Where("library_id = ?", libraryID).Delete(&loan.Loan{}).Error, "loans")
}
