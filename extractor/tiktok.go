package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/sylcroad/profilescope/models"
	"github.com/sylcroad/profilescope/normalize"
)

// maxRecentVideos bounds the recent-content list collected from the grid.
const maxRecentVideos = 12

// tiktokExtractor reads the desktop TikTok profile page. Stat elements carry
// the exact count in their title attribute ("12345 Followers") while the
// visible text is abbreviated ("12.3K"); the title wins when present.
type tiktokExtractor struct{}

func (tiktokExtractor) Platform() models.Platform { return models.PlatformTikTok }

func (tiktokExtractor) ProfileURL(username string) string {
	return "https://www.tiktok.com/@" + username
}

func (tiktokExtractor) ReadySelector() string { return `[data-e2e="user-page"]` }

func (tiktokExtractor) Extract(doc *goquery.Document) *models.RawProfile {
	items := doc.Find(`[data-e2e="user-post-item"]`)

	recent := make([]models.VideoStat, 0, maxRecentVideos)
	items.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxRecentVideos {
			return false
		}
		link, _ := s.Find("a").First().Attr("href")
		views := normalize.Count(s.Find(`[data-e2e="video-views"]`).First().Text())
		recent = append(recent, models.VideoStat{Link: link, Views: views})
		return true
	})

	return &models.RawProfile{
		Username:      text(doc, `[data-e2e="user-title"]`),
		Bio:           text(doc, `[data-e2e="user-bio"]`),
		AvatarURL:     attr(doc, `[data-e2e="user-avatar"] img`, "src"),
		Followers:     statCount(doc, `[title*="Followers"], [data-e2e="followers-count"]`),
		Following:     statCount(doc, `[title*="Following"], [data-e2e="following-count"]`),
		Likes:         statCount(doc, `[title*="Likes"], [data-e2e="likes-count"]`),
		PostsOrVideos: uint64(items.Length()),
		Verified:      exists(doc, `[data-e2e="user-verified-badge"]`),
		Extras: map[string]any{
			"recentVideos": recent,
		},
	}
}

// statCount reads a stat element, preferring its title attribute over the
// abbreviated visible text.
func statCount(doc *goquery.Document, selector string) uint64 {
	sel := doc.Find(selector).First()
	if title, ok := sel.Attr("title"); ok && title != "" {
		return normalize.Count(title)
	}
	return normalize.Count(sel.Text())
}
