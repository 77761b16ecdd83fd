package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEffectiveDate(t *testing.T) {
	p := Post{CreatedAt: "2024-05-01T10:00:00Z"}
	assert.Equal(t, "2024-05-01T10:00:00Z", p.EffectiveDate())

	p.ManualDate = strPtr("2024-04-15")
	assert.Equal(t, "2024-04-15", p.EffectiveDate())

	// an empty override behaves like none at all
	p.ManualDate = strPtr("")
	assert.Equal(t, "2024-05-01T10:00:00Z", p.EffectiveDate())
}

func TestEffectiveTime(t *testing.T) {
	cases := []struct {
		name string
		date string
		want time.Time
	}{
		{"rfc3339", "2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"no zone", "2024-05-01T10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"bare day", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", "yesterday-ish", time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Post{CreatedAt: tc.date}
			assert.True(t, tc.want.Equal(p.EffectiveTime()), "got %v", p.EffectiveTime())
		})
	}
}

func TestDay(t *testing.T) {
	p := Post{CreatedAt: "2024-05-01T10:30:00Z"}
	assert.Equal(t, "2024-05-01", p.Day())

	p.ManualDate = strPtr("2024-04-15")
	assert.Equal(t, "2024-04-15", p.Day())
}
