// Package extractor holds the per-platform profile extraction variants.
// Each variant reads a fixed set of DOM locations off an already-rendered
// page, so it is unit-testable against stored HTML fixtures without a
// live browser.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sylcroad/profilescope/models"
)

// Extractor is the per-platform extraction contract.
type Extractor interface {
	// Platform identifies the variant.
	Platform() models.Platform

	// ProfileURL builds the public profile URL for a username (no leading "@").
	ProfileURL(username string) string

	// ReadySelector is the DOM marker whose presence means the page has
	// loaded enough to extract.
	ReadySelector() string

	// Extract reads the profile fields from the rendered document. It never
	// fails: every field read is independently defaulted, so one absent node
	// cannot fail the whole profile.
	Extract(doc *goquery.Document) *models.RawProfile
}

var registry = map[models.Platform]Extractor{
	models.PlatformInstagram: instagramExtractor{},
	models.PlatformTikTok:    tiktokExtractor{},
}

// ForPlatform returns the extractor variant for a platform.
func ForPlatform(p models.Platform) (Extractor, bool) {
	e, ok := registry[p]
	return e, ok
}

// text returns the trimmed text of the first node matching selector, or "".
func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// attr returns the named attribute of the first node matching selector, or "".
func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return v
}

// exists reports whether any node matches selector.
func exists(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
