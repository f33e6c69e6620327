package metadata

import (
	"strings"

	"github.com/StormKing969/movie-review-app/internal/models"
	"github.com/StormKing969/movie-review-app/internal/structures"
)

const (
	PolicyOfficial        = "official"
	PolicyOfficialTrailer = "official-trailer"
	PolicyOfficialTitle   = "official-title"

	youtubeSite     = "YouTube"
	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

type TrailerPolicyInterface interface {
	Name() string
	Matches(video models.VideoEntry, title string) bool
	Select(videos []models.VideoEntry, title string) []models.VideoEntry
	PrimaryURL(trailers []models.VideoEntry) string
}

// TrailerPolicy decides which videos count as trailers and how the first one is linked.
type TrailerPolicy struct {
	name string
}

func (p *TrailerPolicy) Name() string {
	return p.name
}

func (p *TrailerPolicy) Matches(video models.VideoEntry, title string) bool {
	if video.Site != youtubeSite || video.Key == "" {
		return false
	}
	name := strings.ToLower(video.Name)

	switch p.name {
	case PolicyOfficialTrailer:
		return strings.Contains(name, "official trailer") || strings.Contains(name, "official teaser trailer")
	case PolicyOfficialTitle:
		title = strings.ToLower(strings.TrimSpace(title))
		return strings.Contains(name, "official") && title != "" && strings.Contains(name, title)
	default:
		return strings.Contains(name, "official")
	}
}

// Select keeps matching videos in their original order.
func (p *TrailerPolicy) Select(videos []models.VideoEntry, title string) []models.VideoEntry {
	selected := make([]models.VideoEntry, 0, len(videos))
	for _, v := range videos {
		if p.Matches(v, title) {
			selected = append(selected, v)
		}
	}
	return selected
}

// PrimaryURL links the first selected trailer, or returns "" when there is none.
func (p *TrailerPolicy) PrimaryURL(trailers []models.VideoEntry) string {
	for _, v := range trailers {
		if v.Site == youtubeSite && v.Key != "" {
			return youtubeWatchURL + v.Key
		}
	}
	return ""
}

func NewTrailerPolicy(name string) TrailerPolicyInterface {
	switch name {
	case PolicyOfficialTrailer, PolicyOfficialTitle:
		return &TrailerPolicy{name: name}
	default:
		return &TrailerPolicy{name: PolicyOfficial}
	}
}

// NewConfiguredTrailerPolicy reads the policy name from config.
func NewConfiguredTrailerPolicy(conf *structures.Config) TrailerPolicyInterface {
	return NewTrailerPolicy(conf.Metadata.TrailerPolicy)
}
