package publisher

import (
	"github.com/shortsgen/backend/internal/models"
)

const (
	maxTitleLength  = 100
	truncatedLength = 97
	descriptionTags = "#Shorts #AI #Generated"

	// CategoryPeopleAndBlogs is the YouTube category applied to every upload.
	CategoryPeopleAndBlogs = "22"
	privacyPublic          = "public"
)

// Title derives the video title from the topic. Topics longer than 100 characters keep their
// first 97 characters followed by "...".
func Title(topic string) string {
	runes := []rune(topic)
	if len(runes) <= maxTitleLength {
		return topic
	}
	return string(runes[:truncatedLength]) + "..."
}

// Description appends the fixed hashtag footer to the script.
func Description(script string) string {
	return script + "\n\n" + descriptionTags
}

// BuildMetadata assembles the upload metadata for a generated short.
func BuildMetadata(topic, script string) models.VideoMetadata {
	return models.VideoMetadata{
		Title:         Title(topic),
		Description:   Description(script),
		Tags:          []string{"shorts", "ai", "generated"},
		CategoryID:    CategoryPeopleAndBlogs,
		PrivacyStatus: privacyPublic,
		MadeForKids:   false,
	}
}
