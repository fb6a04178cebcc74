package model

import (
	"time"

	"gorm.io/gorm"
)

// Translation is one UI string for one locale, addressed by a dotted key
// path (e.g. "sop.wizard.next"). Values may carry {variable} placeholders
// interpolated at retrieval time.
type Translation struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Locale    string         `gorm:"type:varchar(5);uniqueIndex:idx_translations_locale_key;not null" json:"locale"`
	Key       string         `gorm:"type:varchar(255);uniqueIndex:idx_translations_locale_key;not null" json:"key"`
	Value     string         `gorm:"type:text;not null" json:"value"`
	Category  string         `gorm:"type:varchar(50);index" json:"category"`
	Context   string         `gorm:"type:text" json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Translation) TableName() string {
	return "translations"
}

// TranslationUsage records which keys a tablet session actually displayed,
// feeding the translation analytics dashboard.
type TranslationUsage struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Locale     string    `gorm:"type:varchar(5);uniqueIndex:idx_translation_usage_key_session;not null" json:"locale"`
	Key        string    `gorm:"type:varchar(255);uniqueIndex:idx_translation_usage_key_session;not null" json:"key"`
	SessionID  string    `gorm:"type:varchar(100);uniqueIndex:idx_translation_usage_key_session;not null" json:"session_id"`
	Context    string    `gorm:"type:varchar(100)" json:"context,omitempty"`
	UsedCount  int       `gorm:"default:1" json:"used_count"`
	LastUsedAt time.Time `json:"last_used_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (TranslationUsage) TableName() string {
	return "translation_usage"
}
