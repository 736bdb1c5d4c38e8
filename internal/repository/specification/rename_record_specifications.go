package specification

import "gorm.io/gorm"

// ByFolder narrows rename history to one folder name.
type ByFolder struct {
	Folder string
}

func (s ByFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder = ?", s.Folder)
}
