////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package model

import "time"

// TimestampFormat is the layout used for timestamps sent to the server.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp formats t in UTC using TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Message is a single chat message. Messages are immutable once created.
type Message struct {
	MessageID   string       `json:"messageId"`
	ChannelID   string       `json:"channelId"`
	Author      User         `json:"user"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	URLPreview  []URLPreview `json:"urlPreview"`
}

// Attachment references an uploaded file.
type Attachment struct {
	FileID   string `json:"fileId"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url,omitempty"`
}

// URLPreview is the metadata of a link preview rendered with a message.
type URLPreview struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	SiteName    string   `json:"siteName,omitempty"`
	Description string   `json:"description,omitempty"`
	MediaType   string   `json:"mediaType,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	Images      []string `json:"images,omitempty"`
	Videos      []string `json:"videos,omitempty"`
	Favicons    []string `json:"favicons,omitempty"`
	Charset     string   `json:"charset,omitempty"`
	OriginalURL string   `json:"originalUrl,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// MessagePage is one page of channel history, newest first.
type MessagePage struct {
	Messages   []Message `json:"messages"`
	IsLastPage bool      `json:"isLastPage"`
}
