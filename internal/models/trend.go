package models

// TrendIdeaPair is a trend report together with the single trade idea derived from it.
// Both texts live in the same row, so a trend can never have more than one idea.
type TrendIdeaPair struct {
	Record
	Title string `gorm:"not null;default:''" json:"title"`
	Trend string `gorm:"column:trend_text;not null" json:"trend"`
	Idea  string `gorm:"column:idea_text;not null;default:''" json:"idea"`
}

// HasIdea reports whether the idea half of the pair has been written.
func (p TrendIdeaPair) HasIdea() bool {
	return p.Idea != ""
}

// WeeklyTrend is the forward-looking trend note for one week, keyed by the week's Monday.
type WeeklyTrend struct {
	Record
	WeekStart string `gorm:"size:10;uniqueIndex;not null" json:"week_start"` // YYYY-MM-DD
	Content   string `gorm:"not null" json:"content"`
}
