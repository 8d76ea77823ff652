package models

import "encoding/json"

// Stage identifies a step of the generation pipeline.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageScripting  Stage = "scripting"
	StagePrompting  Stage = "prompting"
	StageAcquiring  Stage = "acquiring"
	StagePublishing Stage = "publishing"
	StageDone       Stage = "done"
	StageErrored    Stage = "errored"
)

// GenerationRequest is the body accepted by the generate endpoint.
type GenerationRequest struct {
	Topic string `json:"topic"`
}

// Event is one record of the progress stream. Exactly one of the shapes
// {status}, {error} or the terminal {status, videoUrl, script, videoPrompt} is populated.
type Event struct {
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Script      string `json:"script,omitempty"`
	VideoPrompt string `json:"videoPrompt,omitempty"`

	Stage Stage `json:"-"`
}

// completedEvent is the wire shape of a successful terminal event. Script and videoPrompt are
// always present, even when empty.
type completedEvent struct {
	Status      string `json:"status"`
	VideoURL    string `json:"videoUrl"`
	Script      string `json:"script"`
	VideoPrompt string `json:"videoPrompt"`
}

type plainEvent Event

// MarshalJSON writes the terminal success shape in full and omits empty fields otherwise.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Error == "" && e.VideoURL != "" {
		return json.Marshal(completedEvent{
			Status:      e.Status,
			VideoURL:    e.VideoURL,
			Script:      e.Script,
			VideoPrompt: e.VideoPrompt,
		})
	}
	return json.Marshal(plainEvent(e))
}

// Terminal reports whether the event closes the stream.
func (e Event) Terminal() bool {
	return e.Error != "" || e.VideoURL != ""
}

// MediaReference points at a video or image asset.
type MediaReference struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
}

// VideoMetadata is submitted alongside the media payload when publishing.
type VideoMetadata struct {
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
	MadeForKids   bool
}

// PublishedVideo describes an item created on the hosting provider.
type PublishedVideo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
