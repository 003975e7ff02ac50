package models

// DefaultPromptCategory is used when a prompt is saved without a category.
const DefaultPromptCategory = "general"

// Prompt is a reusable analysis prompt kept in the prompt library.
type Prompt struct {
	Record
	Name     string `gorm:"not null" json:"name"`
	Category string `gorm:"not null;default:general;index" json:"category"`
	Content  string `gorm:"not null" json:"content"`
}
