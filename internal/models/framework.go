package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Framework is a development-methodology repository, either seeded
// manually or discovered by crawling GitHub search results. Discovery
// only ever adds rows; existing frameworks are updated in place.
type Framework struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Slug is the unique URL-safe identifier. Collisions during
	// discovery are resolved by numeric suffixing.
	Slug string `gorm:"size:100;uniqueIndex" json:"slug"`
	Name string `gorm:"size:255" json:"name"`

	Description string `gorm:"size:1000" json:"description"`

	InstallCommand string  `gorm:"size:500" json:"install_command"`
	InstallTool    string  `gorm:"size:50" json:"install_tool"`
	Prerequisites  Strings `gorm:"type:text" json:"prerequisites"`

	Homepage  string `gorm:"size:500" json:"homepage"`
	GithubURL string `gorm:"size:500;index" json:"github_url"`

	Color     string `gorm:"size:20" json:"color"`
	IsActive  bool   `gorm:"default:true;index" json:"is_active"`
	SortOrder int    `gorm:"default:0;index" json:"sort_order"`
	Stars     int    `gorm:"default:0" json:"stars"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Framework) TableName() string {
	return "frameworks"
}

// BeforeCreate assigns a UUID if none is set.
func (f *Framework) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Slugify converts a name to a URL-safe slug: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, trimmed.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
