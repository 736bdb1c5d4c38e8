package specification

import "gorm.io/gorm"

type ByKeyName struct {
	Name string
}

func (s ByKeyName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key_name = ?", s.Name)
}

type ByPromptName struct {
	Name string
}

func (s ByPromptName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("prompt_name = ?", s.Name)
}
