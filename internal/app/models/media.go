/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the media records: playlist entries and play events.
*/
package models

// PlaylistUpdateItem is one entry of a playlist update, in playlist order.
type PlaylistUpdateItem struct {
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Description string `json:"description,omitempty"`
	ChannelID   string `json:"channelId,omitempty"`
	PausedAt    string `json:"pausedAt,omitempty"`
	ID          string `json:"_id,omitempty"`
	MediaID     string `json:"mediaId,omitempty"`
	Title       string `json:"title,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Thumb       string `json:"thumb,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	StartedBy   string `json:"startedBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (*PlaylistUpdateItem) recordName() string { return "playlistUpdateItem" }

func decodePlaylistUpdateItem(p Payload, path string) (*PlaylistUpdateItem, error) {
	d := &dec{p: p, path: path}
	rec := &PlaylistUpdateItem{
		StartTime:   d.str("startTime", false),
		EndTime:     d.str("endTime", false),
		Description: d.str("description", false),
		ChannelID:   d.str("channelId", false),
		PausedAt:    d.str("pausedAt", false),
		ID:          d.str("_id", false),
		MediaID:     d.str("mediaId", false),
		Title:       d.str("title", false),
		Duration:    d.str("duration", false),
		Thumb:       d.str("thumb", false),
		MediaType:   d.str("mediaType", false),
		StartedBy:   d.str("startedBy", false),
		CreatedAt:   d.str("createdAt", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// PlayVideo announces media starting to play. StartedBy is an untyped
// passthrough; its shape varies by media source.
type PlayVideo struct {
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Description string `json:"description,omitempty"`
	ChannelID   string `json:"channelId,omitempty"`
	PausedAt    string `json:"pausedAt,omitempty"`
	ID          string `json:"_id,omitempty"`
	MediaID     string `json:"mediaId,omitempty"`
	Title       string `json:"title,omitempty"`
	Link        string `json:"link,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Thumb       string `json:"thumb,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	StartedBy   any    `json:"startedBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (*PlayVideo) recordName() string { return "playVideo" }

func decodePlayVideo(p Payload, path string) (*PlayVideo, error) {
	d := &dec{p: p, path: path}
	rec := &PlayVideo{
		StartTime:   d.str("startTime", false),
		EndTime:     d.str("endTime", false),
		Description: d.str("description", false),
		ChannelID:   d.str("channelId", false),
		PausedAt:    d.str("pausedAt", false),
		ID:          d.str("_id", false),
		MediaID:     d.str("mediaId", false),
		Title:       d.str("title", false),
		Link:        d.str("link", false),
		Duration:    d.str("duration", false),
		Thumb:       d.str("thumb", false),
		MediaType:   d.str("mediaType", false),
		StartedBy:   d.raw("startedBy"),
		CreatedAt:   d.str("createdAt", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}
