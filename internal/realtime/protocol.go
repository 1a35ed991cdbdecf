package realtime

import (
	"encoding/json"
)

// Inbound frame types
const (
	FrameAuth           = "auth"
	FrameTypingStart    = "typing_start"
	FrameTypingStop     = "typing_stop"
	FrameSendMessage    = "send_message"
	FrameAddReaction    = "add_reaction"
	FrameRemoveReaction = "remove_reaction"
)

// Frame is the inbound envelope {type, payload}
type Frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type AuthPayload struct {
	UserID uint `json:"userId"`
}

type TypingFramePayload struct {
	ChannelID uint `json:"channelId"`
}

type SendMessagePayload struct {
	ChannelID uint   `json:"channelId"`
	Content   string `json:"content"`
	ReplyToID *uint  `json:"replyToId"`
}

type ReactionFramePayload struct {
	MessageID uint   `json:"messageId"`
	Emoji     string `json:"emoji"`
}

// handleRaw decodes and dispatches one inbound frame. It reports false
// when the connection must terminate (authentication failure). Any
// other failure is contained to this frame: logged, the connection
// stays open.
func (s *session) handleRaw(data []byte) bool {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.m.logger.Debug("malformed frame", "clientID", s.client.ID(), "error", err)
		s.client.SendEvent(NewErrorEvent("INVALID_FRAME", "invalid frame format"))
		return true
	}

	if s.state != stateBound {
		if frame.Type == FrameAuth {
			return s.handleAuth(frame.Payload)
		}
		// Operations before authentication are ignored
		s.m.logger.Debug("frame before auth ignored", "clientID", s.client.ID(), "type", frame.Type)
		return true
	}

	switch frame.Type {
	case FrameAuth:
		// Already bound; re-auth is ignored
	case FrameTypingStart:
		s.handleTyping(frame.Payload, true)
	case FrameTypingStop:
		s.handleTyping(frame.Payload, false)
	case FrameSendMessage:
		s.handleSendMessage(frame.Payload)
	case FrameAddReaction:
		s.handleReaction(frame.Payload, ReactionAdd)
	case FrameRemoveReaction:
		s.handleReaction(frame.Payload, ReactionRemove)
	default:
		s.m.logger.Debug("unknown frame type ignored", "clientID", s.client.ID(), "type", frame.Type)
	}
	return true
}

// handleAuth drives the Unauthenticated -> Bound transition. The
// claimed user ID is cross-checked against the transport session
// identity when one exists; otherwise it falls back to a
// user-existence check. Both failure paths close the connection with a
// distinct code and never reach Bound.
func (s *session) handleAuth(payload json.RawMessage) bool {
	var auth AuthPayload
	if err := json.Unmarshal(payload, &auth); err != nil || auth.UserID == 0 {
		s.m.logger.Debug("malformed auth payload", "clientID", s.client.ID(), "error", err)
		s.client.SendEvent(NewErrorEvent("INVALID_FRAME", "invalid auth payload"))
		return true
	}

	switch s.identity.Status {
	case IdentityVerified:
		if s.identity.UserID != auth.UserID {
			s.m.logger.Warn("auth identity mismatch",
				"clientID", s.client.ID(), "claimed", auth.UserID, "session", s.identity.UserID)
			s.client.CloseWithCode(CloseAuthMismatch, "claimed identity does not match session")
			return false
		}
	default:
		// Fallback path: no transport identity, verify the claimed user
		// exists. Weaker guarantee, kept for clients without a session
		// token.
		user, err := s.m.store.GetUser(s.ctx, auth.UserID)
		if err != nil || user == nil {
			s.m.logger.Warn("auth user not found", "clientID", s.client.ID(), "claimed", auth.UserID, "error", err)
			s.client.CloseWithCode(CloseUserNotFound, "user not found")
			return false
		}
	}

	s.bind(auth.UserID)
	return true
}

func (s *session) handleTyping(payload json.RawMessage, start bool) {
	var typing TypingFramePayload
	if err := json.Unmarshal(payload, &typing); err != nil || typing.ChannelID == 0 {
		s.m.logger.Debug("malformed typing payload", "clientID", s.client.ID(), "error", err)
		s.client.SendEvent(NewErrorEvent("INVALID_FRAME", "invalid typing payload"))
		return
	}

	if !s.authorizeChannel(typing.ChannelID) {
		return
	}

	eventType := EventTypingStop
	if start {
		s.m.hub.StartTyping(typing.ChannelID, s.userID)
		eventType = EventTypingStart
	} else {
		s.m.hub.StopTyping(typing.ChannelID, s.userID)
	}

	s.m.router.RouteToChannel(typing.ChannelID,
		NewTypingEvent(eventType, s.userID, typing.ChannelID, s.firstName), s.userID)
}

// handleSendMessage persists and then broadcasts. The sender is not
// excluded: every member, sender included, receives the canonical
// persisted record (server timestamp, assigned ID), which may differ
// from the client's optimistic echo. On persistence failure nothing is
// broadcast.
func (s *session) handleSendMessage(payload json.RawMessage) {
	var req SendMessagePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.ChannelID == 0 || req.Content == "" {
		s.m.logger.Debug("malformed send_message payload", "clientID", s.client.ID(), "error", err)
		s.client.SendEvent(NewErrorEvent("INVALID_FRAME", "invalid send_message payload"))
		return
	}

	if !s.authorizeChannel(req.ChannelID) {
		return
	}

	msg, err := s.m.store.CreateMessage(s.ctx, s.userID, req.ChannelID, req.Content, req.ReplyToID)
	if err != nil {
		s.m.logger.Error("failed to persist message",
			"userID", s.userID, "channelID", req.ChannelID, "error", err)
		return
	}

	if s.m.events != nil {
		if err := s.m.events.PublishMessage(msg); err != nil {
			s.m.logger.Error("failed to publish message event", "messageID", msg.ID, "error", err)
		}
	}

	s.m.router.RouteToChannel(req.ChannelID, NewMessageEvent(msg), 0)
}

// handleReaction resolves the message's channel from storage (never
// trusted from the client), authorizes, mutates and broadcasts without
// exclusion.
func (s *session) handleReaction(payload json.RawMessage, action string) {
	var req ReactionFramePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.MessageID == 0 || req.Emoji == "" {
		s.m.logger.Debug("malformed reaction payload", "clientID", s.client.ID(), "error", err)
		s.client.SendEvent(NewErrorEvent("INVALID_FRAME", "invalid reaction payload"))
		return
	}

	msg, err := s.m.store.GetMessage(s.ctx, req.MessageID)
	if err != nil || msg == nil {
		s.m.logger.Debug("reaction on unknown message",
			"userID", s.userID, "messageID", req.MessageID, "error", err)
		return
	}

	if !s.authorizeChannel(msg.ChannelID) {
		return
	}

	if action == ReactionAdd {
		err = s.m.store.AddReaction(s.ctx, req.MessageID, s.userID, req.Emoji)
	} else {
		err = s.m.store.RemoveReaction(s.ctx, req.MessageID, s.userID, req.Emoji)
	}
	if err != nil {
		s.m.logger.Error("failed to persist reaction",
			"userID", s.userID, "messageID", req.MessageID, "action", action, "error", err)
		return
	}

	s.m.router.RouteToChannel(msg.ChannelID,
		NewReactionEvent(req.MessageID, req.Emoji, s.userID, action), 0)
}

// authorizeChannel checks membership against storage, not the local
// routing snapshot. Unauthorized operations are silently dropped; the
// caller gets no error frame.
func (s *session) authorizeChannel(channelID uint) bool {
	ok, err := s.m.store.IsChannelMember(s.ctx, channelID, s.userID)
	if err != nil {
		s.m.logger.Error("membership check failed",
			"userID", s.userID, "channelID", channelID, "error", err)
		return false
	}
	if !ok {
		s.m.logger.Warn("unauthorized channel operation dropped",
			"userID", s.userID, "channelID", channelID)
	}
	return ok
}
