package models

import "time"

// VideoStat is one entry of a platform's recent-content list.
type VideoStat struct {
	Link  string `json:"link"`
	Views uint64 `json:"views"`
}

// RawProfile is what a platform extractor reads off a rendered page.
//
// Every field is independently defaulted: a missing DOM node yields the zero
// value ("" / false / 0), never an error. Counts are already normalized to
// exact integers by the time they land here.
type RawProfile struct {
	Username      string
	DisplayName   string
	Bio           string
	Followers     uint64
	Following     uint64
	PostsOrVideos uint64
	Likes         uint64
	AvatarURL     string
	Verified      bool
	Private       bool

	// Extras carries platform-specific data, e.g. TikTok's recent-video list.
	Extras map[string]any
}

// ProfileRecord is the platform-agnostic scrape result sent to the webhook
// and returned to the invoker.
type ProfileRecord struct {
	Username      string         `json:"username"`
	DisplayName   string         `json:"displayName,omitempty"`
	Bio           string         `json:"bio"`
	Followers     uint64         `json:"followers"`
	Following     uint64         `json:"following"`
	PostsOrVideos uint64         `json:"postsOrVideos"`
	Likes         uint64         `json:"likes,omitempty"`
	AvatarURL     string         `json:"avatarUrl"`
	Verified      bool           `json:"verified"`
	Private       bool           `json:"private,omitempty"`
	Extras        map[string]any `json:"extras,omitempty"`
	ScrapedAt     time.Time      `json:"scrapedAt"`
}

// NewProfileRecord converts an extractor's raw output into the canonical
// record, stamping scrapedAt. The username from the job descriptor wins when
// the page did not expose one (private walls often hide the header handle).
func NewProfileRecord(job *ScrapeJob, raw *RawProfile, scrapedAt time.Time) *ProfileRecord {
	username := raw.Username
	if username == "" {
		username = job.Username
	}
	return &ProfileRecord{
		Username:      username,
		DisplayName:   raw.DisplayName,
		Bio:           raw.Bio,
		Followers:     raw.Followers,
		Following:     raw.Following,
		PostsOrVideos: raw.PostsOrVideos,
		Likes:         raw.Likes,
		AvatarURL:     raw.AvatarURL,
		Verified:      raw.Verified,
		Private:       raw.Private,
		Extras:        raw.Extras,
		ScrapedAt:     scrapedAt,
	}
}
