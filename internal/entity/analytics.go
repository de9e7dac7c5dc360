package entity

import "time"

type PageView struct {
	ID        int       `json:"id"`
	Page      string    `json:"page"`
	Referrer  string    `json:"referrer,omitempty"`
	Device    string    `json:"device,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	Country   string    `json:"country,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PageCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type ShareCount struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// AnalyticsSummary is recomputed from raw page_views rows on every request.
type AnalyticsSummary struct {
	Days           int          `json:"days"`
	TotalViews     int          `json:"total_views"`
	UniqueSessions int          `json:"unique_sessions"`
	TopPages       []PageCount  `json:"top_pages"`
	ViewsByDay     []DayCount   `json:"views_by_day"`
	Devices        []ShareCount `json:"devices"`
	Browsers       []ShareCount `json:"browsers"`
	Countries      []ShareCount `json:"countries"`
	TopReferrers   []PageCount  `json:"top_referrers"`
}
