package model

import (
	"strings"
	"time"
)

// Post is a single journal entry. Dates travel as strings: created_at is
// always RFC 3339 UTC, manual_date is whatever the client sent (stored
// verbatim, nullable).
type Post struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Content    string  `json:"content" gorm:"type:text;not null"`
	Keywords   string  `json:"keywords" gorm:"type:text"`
	CreatedAt  string  `json:"created_at" gorm:"type:varchar(64);not null"`
	ManualDate *string `json:"manual_date" gorm:"type:varchar(64)"`
}

func (Post) TableName() string { return "posts" }

// EffectiveDate returns manual_date when set, created_at otherwise. Every
// filter, sort and day bucket goes through this, never through CreatedAt
// directly.
func (p Post) EffectiveDate() string {
	if p.ManualDate != nil && *p.ManualDate != "" {
		return *p.ManualDate
	}
	return p.CreatedAt
}

// effectiveLayouts are tried in order when parsing an effective date.
// manual_date may be a bare day like "2024-05-01".
var effectiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EffectiveTime parses the effective date for ordering. Unparseable dates
// collapse to the zero time; a stable sort then keeps them in collection
// order.
func (p Post) EffectiveTime() time.Time {
	s := p.EffectiveDate()
	for _, layout := range effectiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Day returns the calendar-day part of the effective date, i.e. everything
// before the first 'T'. For a bare day string that is the whole string.
func (p Post) Day() string {
	s, _, _ := strings.Cut(p.EffectiveDate(), "T")
	return s
}

// NowUTC is the created_at stamp for new posts.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
