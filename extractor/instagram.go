package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sylcroad/profilescope/models"
	"github.com/sylcroad/profilescope/normalize"
)

// instagramExtractor reads the desktop Instagram profile header.
//
// The header stat list is positional: posts, followers, following.
type instagramExtractor struct{}

func (instagramExtractor) Platform() models.Platform { return models.PlatformInstagram }

func (instagramExtractor) ProfileURL(username string) string {
	return "https://www.instagram.com/" + username + "/"
}

func (instagramExtractor) ReadySelector() string { return "header" }

func (instagramExtractor) Extract(doc *goquery.Document) *models.RawProfile {
	var stats []string
	doc.Find("header section ul li").Each(func(_ int, s *goquery.Selection) {
		stats = append(stats, strings.TrimSpace(s.Text()))
	})
	statAt := func(i int) uint64 {
		if i < len(stats) {
			return normalize.Count(stats[i])
		}
		return 0
	}

	private := false
	doc.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "Private") {
			private = true
			return false
		}
		return true
	})

	return &models.RawProfile{
		Username:      text(doc, "header h2"),
		DisplayName:   text(doc, "header section div div span"),
		Bio:           text(doc, "header section div span"),
		PostsOrVideos: statAt(0),
		Followers:     statAt(1),
		Following:     statAt(2),
		AvatarURL:     attr(doc, "header img", "src"),
		Verified:      exists(doc, `svg[aria-label="Verified"]`),
		Private:       private,
	}
}
