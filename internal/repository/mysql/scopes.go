package mysql

import (
	"gorm.io/gorm"

	"github.com/Guyuepp/go-social-feed/domain"
)

// newestAfter pages rows by (date, id) descending, starting strictly after the cursor.
func newestAfter(after domain.Cursor, num int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !after.IsZero() {
			db = db.Where("(date < ? OR (date = ? AND id < ?))", after.Date, after.Date, after.ID)
		}
		return db.Order("date DESC, id DESC").Limit(int(num))
	}
}
