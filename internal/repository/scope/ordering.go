package scope

import "gorm.io/gorm"

// NewestFirst orders journal rows for paging. Renames of one batch can share
// a timestamp, so id breaks ties and pages never overlap.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// OldestFirst keeps keys and prompts in the order the user added them.
func OldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
