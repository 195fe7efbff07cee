package sqlstore

import (
	"strings"

	"gorm.io/gorm"
)

const maxPageSize = 500

func paginate(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return db.Limit(limit).Offset(offset)
}

// likePattern lower-cases s and wraps it for a contains match. LIKE
// wildcards typed by the user are dropped.
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("%", "", "_", "").Replace(s)
	return "%" + s + "%"
}
