package service

import (
	"testing"
	"time"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

func TestIsBot(t *testing.T) {
	bots := []string{
		"Googlebot/2.1 (+http://www.google.com/bot.html)",
		"curl/8.4.0",
		"python-requests/2.31.0",
		"Mozilla/5.0 (compatible; AhrefsBot/7.0)",
		"HeadlessChrome/120.0",
	}
	for _, ua := range bots {
		if !IsBot(ua) {
			t.Errorf("expected %q to be flagged as a bot", ua)
		}
	}

	humans := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
		"",
	}
	for _, ua := range humans {
		if IsBot(ua) {
			t.Errorf("did not expect %q to be flagged as a bot", ua)
		}
	}
}

func TestAggregateEmptyWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	summary := Aggregate(nil, 30, now)

	if summary.TotalViews != 0 {
		t.Errorf("expected 0 total views, got %d", summary.TotalViews)
	}
	if summary.UniqueSessions != 0 {
		t.Errorf("expected 0 unique sessions, got %d", summary.UniqueSessions)
	}
	if len(summary.ViewsByDay) != 30 {
		t.Fatalf("expected 30 zero-filled day entries, got %d", len(summary.ViewsByDay))
	}
	for _, d := range summary.ViewsByDay {
		if d.Count != 0 {
			t.Errorf("expected day %s to be zero-filled, got %d", d.Day, d.Count)
		}
	}
	if summary.ViewsByDay[0].Day != "2026-08-03" {
		t.Errorf("expected window to start at 2026-08-03, got %s", summary.ViewsByDay[0].Day)
	}
	if summary.ViewsByDay[29].Day != "2026-09-01" {
		t.Errorf("expected window to end at 2026-09-01, got %s", summary.ViewsByDay[29].Day)
	}
}

func TestAggregateCounts(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	at := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	views := []entity.PageView{
		{Page: "/", SessionID: "s1", Device: "mobile", Browser: "Chrome", Country: "Kenya", Referrer: "https://www.instagram.com/p/abc", CreatedAt: at(0)},
		{Page: "/", SessionID: "s1", Device: "mobile", Browser: "Chrome", Country: "Kenya", CreatedAt: at(0)},
		{Page: "/products/shoe", SessionID: "s2", Device: "desktop", Browser: "Firefox", Country: "Kenya", Referrer: "not a url", CreatedAt: at(1)},
		{Page: "/cart", SessionID: "s3", Device: "mobile", Browser: "Safari", Country: "Uganda", CreatedAt: at(2)},
	}

	summary := Aggregate(views, 7, now)

	if summary.TotalViews != 4 {
		t.Errorf("expected 4 total views, got %d", summary.TotalViews)
	}
	if summary.UniqueSessions != 3 {
		t.Errorf("expected 3 unique sessions, got %d", summary.UniqueSessions)
	}

	if len(summary.TopPages) == 0 || summary.TopPages[0].Label != "/" || summary.TopPages[0].Count != 2 {
		t.Errorf("expected / on top with 2 views, got %+v", summary.TopPages)
	}

	if len(summary.ViewsByDay) != 7 {
		t.Fatalf("expected 7 day entries, got %d", len(summary.ViewsByDay))
	}
	if last := summary.ViewsByDay[6]; last.Day != "2026-09-01" || last.Count != 2 {
		t.Errorf("expected 2 views on 2026-09-01, got %+v", last)
	}

	// mobile 3 of 4 rounds to 75, desktop 1 of 4 to 25
	if len(summary.Devices) != 2 {
		t.Fatalf("expected 2 device shares, got %+v", summary.Devices)
	}
	if summary.Devices[0].Label != "mobile" || summary.Devices[0].Percent != 75 {
		t.Errorf("expected mobile at 75%%, got %+v", summary.Devices[0])
	}
	if summary.Devices[1].Label != "desktop" || summary.Devices[1].Percent != 25 {
		t.Errorf("expected desktop at 25%%, got %+v", summary.Devices[1])
	}

	// empty and unparsable referrers both fall back to Direct
	direct := 0
	for _, r := range summary.TopReferrers {
		if r.Label == "Direct" {
			direct = r.Count
		}
	}
	if direct != 3 {
		t.Errorf("expected 3 Direct referrers, got %d", direct)
	}
	if top := summary.TopReferrers[0]; top.Label != "Direct" || top.Count != 3 {
		t.Errorf("expected Direct on top of referrers, got %+v", top)
	}
}

func TestAggregateTopPagesCapped(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	views := make([]entity.PageView, 0, 15)
	for i := 0; i < 15; i++ {
		views = append(views, entity.PageView{
			Page:      "/page-" + string(rune('a'+i)),
			SessionID: "s",
			CreatedAt: now,
		})
	}

	summary := Aggregate(views, 7, now)
	if len(summary.TopPages) != topEntries {
		t.Errorf("expected top pages capped at %d, got %d", topEntries, len(summary.TopPages))
	}
}
