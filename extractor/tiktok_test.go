package extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sylcroad/profilescope/models"
)

const tiktokFixture = `<html><body>
<div data-e2e="user-page">
  <h1 data-e2e="user-title">charlidamelio</h1>
  <h2 data-e2e="user-bio">comfort movies only</h2>
  <div data-e2e="user-avatar"><img src="https://cdn.example.com/charli.jpg"/></div>
  <div data-e2e="user-verified-badge"></div>
  <strong data-e2e="followers-count" title="155300000 Followers">155.3M</strong>
  <strong data-e2e="following-count" title="1234 Following">1234</strong>
  <strong data-e2e="likes-count">11.5B</strong>
  <div data-e2e="user-post-item">
    <a href="https://www.tiktok.com/@charlidamelio/video/1"></a>
    <strong data-e2e="video-views">1.2M</strong>
  </div>
  <div data-e2e="user-post-item">
    <a href="https://www.tiktok.com/@charlidamelio/video/2"></a>
    <strong data-e2e="video-views">987K</strong>
  </div>
  <div data-e2e="user-post-item">
    <a href="https://www.tiktok.com/@charlidamelio/video/3"></a>
  </div>
</div>
</body></html>`

func TestTikTokExtract(t *testing.T) {
	ext, ok := ForPlatform(models.PlatformTikTok)
	if !ok {
		t.Fatal("no extractor registered for TikTok")
	}

	raw := ext.Extract(parseDoc(t, tiktokFixture))

	if raw.Username != "charlidamelio" {
		t.Errorf("Username = %q", raw.Username)
	}
	if raw.Bio != "comfort movies only" {
		t.Errorf("Bio = %q", raw.Bio)
	}
	if raw.AvatarURL != "https://cdn.example.com/charli.jpg" {
		t.Errorf("AvatarURL = %q", raw.AvatarURL)
	}
	// Exact count from the title attribute wins over the abbreviated text.
	if raw.Followers != 155300000 {
		t.Errorf("Followers = %d, want 155300000", raw.Followers)
	}
	if raw.Following != 1234 {
		t.Errorf("Following = %d, want 1234", raw.Following)
	}
	// No title attribute on likes: the abbreviated text is normalized instead.
	if raw.Likes != 11500000000 {
		t.Errorf("Likes = %d, want 11500000000", raw.Likes)
	}
	if raw.PostsOrVideos != 3 {
		t.Errorf("PostsOrVideos = %d, want 3", raw.PostsOrVideos)
	}
	if !raw.Verified {
		t.Error("Verified = false, want true")
	}

	recent, ok := raw.Extras["recentVideos"].([]models.VideoStat)
	if !ok {
		t.Fatalf("recentVideos missing or wrong type: %T", raw.Extras["recentVideos"])
	}
	if len(recent) != 3 {
		t.Fatalf("len(recentVideos) = %d, want 3", len(recent))
	}
	if recent[0].Link != "https://www.tiktok.com/@charlidamelio/video/1" || recent[0].Views != 1200000 {
		t.Errorf("recent[0] = %+v", recent[0])
	}
	if recent[1].Views != 987000 {
		t.Errorf("recent[1].Views = %d, want 987000", recent[1].Views)
	}
	// Third item has no view counter: views default to 0, link still collected.
	if recent[2].Views != 0 || recent[2].Link == "" {
		t.Errorf("recent[2] = %+v", recent[2])
	}
}

func TestTikTokExtract_RecentVideosCappedAtTwelve(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<div data-e2e="user-page">`)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, `<div data-e2e="user-post-item"><a href="https://www.tiktok.com/@u/video/%d"></a><strong data-e2e="video-views">%dK</strong></div>`, i, i)
	}
	b.WriteString(`</div>`)

	ext, _ := ForPlatform(models.PlatformTikTok)
	raw := ext.Extract(parseDoc(t, b.String()))

	if raw.PostsOrVideos != 20 {
		t.Errorf("PostsOrVideos = %d, want 20", raw.PostsOrVideos)
	}
	recent := raw.Extras["recentVideos"].([]models.VideoStat)
	if len(recent) != 12 {
		t.Errorf("len(recentVideos) = %d, want 12", len(recent))
	}
}

func TestTikTokExtract_EmptyPage(t *testing.T) {
	ext, _ := ForPlatform(models.PlatformTikTok)
	raw := ext.Extract(parseDoc(t, `<html><body></body></html>`))

	if raw.Username != "" || raw.Bio != "" || raw.AvatarURL != "" {
		t.Errorf("string fields not defaulted: %+v", raw)
	}
	if raw.Followers != 0 || raw.Likes != 0 || raw.PostsOrVideos != 0 {
		t.Errorf("count fields not defaulted: %+v", raw)
	}
	recent := raw.Extras["recentVideos"].([]models.VideoStat)
	if len(recent) != 0 {
		t.Errorf("len(recentVideos) = %d, want 0", len(recent))
	}
}

func TestTikTokProfileURL(t *testing.T) {
	ext, _ := ForPlatform(models.PlatformTikTok)
	if got := ext.ProfileURL("charlidamelio"); got != "https://www.tiktok.com/@charlidamelio" {
		t.Errorf("ProfileURL = %q", got)
	}
}

func TestForPlatform_Unknown(t *testing.T) {
	if _, ok := ForPlatform(models.Platform("Myspace")); ok {
		t.Error("expected no extractor for unknown platform")
	}
}
