package publisher

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/media"
	"github.com/shortsgen/backend/internal/models"
	"github.com/shortsgen/backend/internal/session"
)

// MediaOpener reads the payload behind a media reference.
type MediaOpener interface {
	Open(ctx context.Context, ref models.MediaReference) (media.Payload, error)
}

// YouTube uploads through the YouTube Data API v3.
type YouTube struct {
	oauth   *oauth2.Config
	opener  MediaOpener
	options []option.ClientOption
}

// NewYouTube constructs a publisher. extra client options are applied to every service, for
// example option.WithEndpoint in tests.
func NewYouTube(oauth *oauth2.Config, opener MediaOpener, extra ...option.ClientOption) (*YouTube, error) {
	if oauth == nil {
		return nil, errors.New("publisher: oauth config must be provided")
	}
	if opener == nil {
		return nil, errors.New("publisher: media opener must be provided")
	}
	return &YouTube{oauth: oauth, opener: opener, options: extra}, nil
}

// Publish uploads the media and returns the resulting watch URL. The HTTP client refreshes an
// expired access token when the bundle carries a refresh token.
func (y *YouTube) Publish(ctx context.Context, ref models.MediaReference, meta models.VideoMetadata, token *oauth2.Token) (models.PublishedVideo, error) {
	if !session.Usable(token) {
		return models.PublishedVideo{}, ErrMissingCredentials
	}

	logger := logging.FromContext(ctx)

	payload, err := y.opener.Open(ctx, ref)
	if err != nil {
		return models.PublishedVideo{}, fmt.Errorf("%w: open media: %v", ErrPublish, err)
	}
	defer payload.Body.Close()

	opts := append([]option.ClientOption{option.WithHTTPClient(y.oauth.Client(ctx, token))}, y.options...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return models.PublishedVideo{}, fmt.Errorf("%w: create youtube service: %v", ErrPublish, err)
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			SelfDeclaredMadeForKids: meta.MadeForKids,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}

	var mediaOpts []googleapi.MediaOption
	if payload.ContentType != "" {
		mediaOpts = append(mediaOpts, googleapi.ContentType(payload.ContentType))
	}

	logger.Info("uploading video", "title", meta.Title, "mediaUrl", ref.URL, "size", payload.Size)

	uploaded, err := service.Videos.Insert([]string{"snippet", "status"}, video).
		Media(payload.Body, mediaOpts...).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return models.PublishedVideo{}, fmt.Errorf("%w: youtube status %d: %s", ErrPublish, apiErr.Code, apiErr.Message)
		}
		return models.PublishedVideo{}, fmt.Errorf("%w: %v", ErrPublish, err)
	}
	if uploaded.Id == "" {
		return models.PublishedVideo{}, fmt.Errorf("%w: response carried no video id", ErrPublish)
	}

	logger.Info("video uploaded", "videoId", uploaded.Id)

	return models.PublishedVideo{
		URL:         WatchURL(uploaded.Id),
		Title:       meta.Title,
		Description: meta.Description,
	}, nil
}
