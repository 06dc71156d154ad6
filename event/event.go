////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package event

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/model"
)

// Kind is the closed set of event kinds understood by the client.
type Kind string

const (
	// MessageNew is pushed when a message is posted to a channel.
	MessageNew Kind = "message.new"

	// ChannelUnreadCount is the absolute unread counter of a channel for the
	// session's own user.
	ChannelUnreadCount Kind = "channel.updateUnReadCount"

	// ChannelCreated is pushed with the full snapshot of a new channel.
	ChannelCreated Kind = "channel.created"

	// ChannelUpdate hints that a channel changed and should be re-fetched.
	ChannelUpdate Kind = "channel.update"

	// UserTotalUnreadCount is the aggregate unread counter of the session's
	// user. It is only handled at the client level.
	UserTotalUnreadCount Kind = "user.totalUnreadCount"
)

// Kinds lists every recognised Kind.
var Kinds = []Kind{
	MessageNew, ChannelUnreadCount, ChannelCreated, ChannelUpdate,
	UserTotalUnreadCount,
}

// Valid reports whether k is one of the recognised kinds.
func (k Kind) Valid() bool {
	switch k {
	case MessageNew, ChannelUnreadCount, ChannelCreated, ChannelUpdate,
		UserTotalUnreadCount:
		return true
	}
	return false
}

// Event is the tagged union over every event kind. The concrete types are
// *MessageNewEvent, *UnreadCountEvent, *ChannelCreatedEvent,
// *ChannelUpdateEvent and *TotalUnreadCountEvent.
type Event interface {
	// Kind returns the tag of the event.
	Kind() Kind

	// ChannelID returns the channel the event is scoped to, or an empty
	// string for client-only events.
	ChannelID() string
}

// MessageNewEvent carries a newly posted message.
type MessageNewEvent struct {
	Message model.Message
}

func (e *MessageNewEvent) Kind() Kind        { return MessageNew }
func (e *MessageNewEvent) ChannelID() string { return e.Message.ChannelID }

// UnreadCountEvent sets the unread counter of a channel.
type UnreadCountEvent struct {
	model.ChannelUnreadCount
}

func (e *UnreadCountEvent) Kind() Kind        { return ChannelUnreadCount }
func (e *UnreadCountEvent) ChannelID() string { return e.ChannelUnreadCount.ChannelID }

// ChannelCreatedEvent carries the snapshot of a newly created channel.
type ChannelCreatedEvent struct {
	Channel model.ChannelData
}

func (e *ChannelCreatedEvent) Kind() Kind        { return ChannelCreated }
func (e *ChannelCreatedEvent) ChannelID() string { return e.Channel.ChannelID }

// ChannelUpdateEvent names a channel whose state is stale.
type ChannelUpdateEvent struct {
	model.ChannelUpdate
}

func (e *ChannelUpdateEvent) Kind() Kind        { return ChannelUpdate }
func (e *ChannelUpdateEvent) ChannelID() string { return e.ChannelUpdate.ChannelID }

// TotalUnreadCountEvent carries the aggregate unread count of the user.
type TotalUnreadCountEvent struct {
	TotalUnreadCount int
}

func (e *TotalUnreadCountEvent) Kind() Kind        { return UserTotalUnreadCount }
func (e *TotalUnreadCountEvent) ChannelID() string { return "" }

// Frame is the wire envelope of every stream frame.
type Frame struct {
	EventType Kind            `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

// Error messages.
const (
	malformedFrameErr = "malformed stream frame"
	emptyKindErr      = "stream frame has no event type"
	missingDataErr    = "stream frame for %q has no data"
	unknownKindErr    = "unknown event type %q"
	badPayloadErr     = "invalid %q payload"
)

// Decode parses a raw stream frame into its typed Event. It fails when the
// frame is not JSON, has an empty event type, has no data, names an
// unrecognised kind or carries a payload of the wrong shape.
func Decode(raw []byte) (Event, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, malformedFrameErr)
	}
	if f.EventType == "" {
		return nil, errors.New(emptyKindErr)
	}
	if len(f.Data) == 0 || string(f.Data) == "null" {
		return nil, errors.Errorf(missingDataErr, f.EventType)
	}

	var (
		ev  Event
		err error
	)
	switch f.EventType {
	case MessageNew:
		e := &MessageNewEvent{}
		err = json.Unmarshal(f.Data, &e.Message)
		ev = e
	case ChannelUnreadCount:
		e := &UnreadCountEvent{}
		err = json.Unmarshal(f.Data, &e.ChannelUnreadCount)
		ev = e
	case ChannelCreated:
		e := &ChannelCreatedEvent{}
		err = json.Unmarshal(f.Data, &e.Channel)
		ev = e
	case ChannelUpdate:
		e := &ChannelUpdateEvent{}
		err = json.Unmarshal(f.Data, &e.ChannelUpdate)
		ev = e
	case UserTotalUnreadCount:
		e := &TotalUnreadCountEvent{}
		err = json.Unmarshal(f.Data, &e.TotalUnreadCount)
		ev = e
	default:
		return nil, errors.Errorf(unknownKindErr, f.EventType)
	}
	if err != nil {
		return nil, errors.Wrapf(err, badPayloadErr, f.EventType)
	}
	return ev, nil
}

// Encode builds the wire frame for ev.
func Encode(ev Event) ([]byte, error) {
	var payload interface{}
	switch e := ev.(type) {
	case *MessageNewEvent:
		payload = e.Message
	case *UnreadCountEvent:
		payload = e.ChannelUnreadCount
	case *ChannelCreatedEvent:
		payload = e.Channel
	case *ChannelUpdateEvent:
		payload = e.ChannelUpdate
	case *TotalUnreadCountEvent:
		payload = e.TotalUnreadCount
	default:
		return nil, errors.Errorf("cannot encode event of type %T", ev)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{EventType: ev.Kind(), Data: data})
}

// String returns a short description of ev for logging.
func String(ev Event) string {
	if ev == nil {
		return "Event(nil)"
	}
	return fmt.Sprintf("Event(%s, channel=%q)", ev.Kind(), ev.ChannelID())
}
