package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// VideoMetadata holds the Data API fields used to enrich a transcript result.
type VideoMetadata struct {
	Title        string
	ChannelTitle string
	PublishedAt  string
}

// MetadataClient looks up video details through the YouTube Data API v3.
// It is optional: extraction works without it, the Data API only adds the
// channel title and publish date the transcript endpoints do not carry.
type MetadataClient struct {
	service *yt.Service
}

// NewMetadataClient creates a Data API client with the given API key.
func NewMetadataClient(ctx context.Context, apiKey string) (*MetadataClient, error) {
	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &MetadataClient{service: service}, nil
}

// VideoDetails fetches snippet metadata for one video.
func (c *MetadataClient) VideoDetails(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("video details lookup failed: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: no details for %s", ErrVideoUnavailable, videoID)
	}

	snippet := resp.Items[0].Snippet
	return &VideoMetadata{
		Title:        snippet.Title,
		ChannelTitle: snippet.ChannelTitle,
		PublishedAt:  snippet.PublishedAt,
	}, nil
}
