package service

import (
	"context"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/sanitize"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	topEntries        = 10
)

// botMarkers is a coarse user-agent denylist; matches are dropped silently.
var botMarkers = []string{
	"bot", "crawler", "spider", "curl", "wget", "headless",
	"python-requests", "scrapy", "facebookexternalhit", "slurp",
}

type TrackViewRequest struct {
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
	Device    string `json:"device"`
	Browser   string `json:"browser"`
	Country   string `json:"country"`
	SessionID string `json:"session_id"`
}

type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// TrackView records a page view. Bot traffic is dropped and persistence
// failures are swallowed; the caller always gets a nil error.
func (s *AnalyticsService) TrackView(ctx context.Context, req TrackViewRequest, userAgent string) error {
	if req.Page == "" || IsBot(userAgent) {
		return nil
	}
	view := &entity.PageView{
		Page:      sanitize.Clean(req.Page, 300),
		Referrer:  sanitize.Clean(req.Referrer, 500),
		Device:    sanitize.Clean(req.Device, 30),
		Browser:   sanitize.Clean(req.Browser, 60),
		Country:   sanitize.Clean(req.Country, 60),
		SessionID: sanitize.Clean(req.SessionID, 60),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.analyticsRepo.InsertPageView(ctx, view); err != nil {
		logger.Error().Err(err).Msg("Error recording page view")
	}
	return nil
}

// Summary recomputes the dashboard aggregates from raw rows on every call.
func (s *AnalyticsService) Summary(ctx context.Context, days int) (*entity.AnalyticsSummary, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	now := time.Now().UTC()
	since := now.Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))

	views, err := s.analyticsRepo.ViewsSince(ctx, since)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching page views")
		return nil, err
	}
	return Aggregate(views, days, now), nil
}

// IsBot reports whether the user agent looks like automated traffic.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

// Aggregate tallies the window in memory. ViewsByDay always holds exactly
// `days` entries, one per calendar day ending at `now`, zero-filled where no
// traffic occurred.
func Aggregate(views []entity.PageView, days int, now time.Time) *entity.AnalyticsSummary {
	summary := &entity.AnalyticsSummary{
		Days:       days,
		TotalViews: len(views),
	}

	sessions := map[string]struct{}{}
	pages := map[string]int{}
	byDay := map[string]int{}
	devices := map[string]int{}
	browsers := map[string]int{}
	countries := map[string]int{}
	referrers := map[string]int{}

	for _, v := range views {
		if v.SessionID != "" {
			sessions[v.SessionID] = struct{}{}
		}
		pages[v.Page]++
		byDay[v.CreatedAt.UTC().Format("2006-01-02")]++
		if v.Device != "" {
			devices[v.Device]++
		}
		if v.Browser != "" {
			browsers[v.Browser]++
		}
		if v.Country != "" {
			countries[v.Country]++
		}
		referrers[referrerHost(v.Referrer)]++
	}

	summary.UniqueSessions = len(sessions)
	summary.TopPages = topCounts(pages, topEntries)
	summary.TopReferrers = topCounts(referrers, topEntries)
	summary.Devices = shares(devices)
	summary.Browsers = shares(browsers)
	summary.Countries = shares(countries)

	start := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	summary.ViewsByDay = make([]entity.DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		summary.ViewsByDay = append(summary.ViewsByDay, entity.DayCount{Day: day, Count: byDay[day]})
	}

	return summary
}

// referrerHost extracts the hostname from a referrer URL, falling back to
// "Direct" when absent or unparsable.
func referrerHost(referrer string) string {
	if referrer == "" {
		return "Direct"
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return "Direct"
	}
	return u.Hostname()
}

func topCounts(m map[string]int, n int) []entity.PageCount {
	out := make([]entity.PageCount, 0, len(m))
	for label, count := range m {
		out = append(out, entity.PageCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func shares(m map[string]int) []entity.ShareCount {
	total := 0
	for _, count := range m {
		total += count
	}
	out := make([]entity.ShareCount, 0, len(m))
	for label, count := range m {
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(count) * 100 / float64(total)))
		}
		out = append(out, entity.ShareCount{Label: label, Count: count, Percent: percent})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
