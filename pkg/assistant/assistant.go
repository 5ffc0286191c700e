// Package assistant keeps the conversation with the backend assistant.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrEmptyMessage is returned when a message has neither text nor attachment.
var ErrEmptyMessage = errors.New("message is empty")

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Message is one turn of the transcript.
type Message struct {
	ID          int
	Role        Role
	Text        string
	Attachments []*utils.TImageAsset
}

// Gateway sends one user message to the assistant backend.
type Gateway interface {
	Ask(ctx context.Context, message string) (utils.TAssistantReply, error)
}

/**************************************************************************************************
** Conversation is an append-only transcript opened by the assistant greeting.
**************************************************************************************************/
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	nextID   int
	gateway  Gateway
	logger   *logrus.Logger
}

/**************************************************************************************************
** NewConversation opens a transcript holding the greeting.
**
** @param gateway - Assistant backend
** @param logger - Logger instance for output
** @return *Conversation - Transcript, or nil when a dependency is missing
**************************************************************************************************/
func NewConversation(gateway Gateway, logger *logrus.Logger) *Conversation {
	if gateway == nil || logger == nil {
		return nil
	}
	c := &Conversation{gateway: gateway, logger: logger, nextID: 1}
	c.append(RoleAssistant, utils.AssistantGreeting, nil)
	return c
}

/**************************************************************************************************
** Send appends the user message, asks the backend and appends its answer. An empty answer is
** shown as a placeholder; a failed call appends an error notice and returns the error.
**
** @param ctx - Context of the backend call
** @param text - User text, trimmed
** @param attachments - Images shown alongside the message; they are not sent to the backend
** @return Message - The assistant message appended
** @return error - ErrEmptyMessage, or the gateway error
**************************************************************************************************/
func (c *Conversation) Send(ctx context.Context, text string, attachments []*utils.TImageAsset) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(attachments) == 0 {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	c.append(RoleUser, text, attachments)
	c.mu.Unlock()

	reply, err := c.gateway.Ask(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Errorf("Error asking assistant: %v", err)
		return c.append(RoleAssistant, utils.AssistantErrorReply, nil), err
	}
	if strings.TrimSpace(reply.Reply) == "" {
		return c.append(RoleAssistant, utils.AssistantEmptyReply, nil), nil
	}
	return c.append(RoleAssistant, reply.Reply, nil), nil
}

// Messages returns a copy of the transcript, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) append(role Role, text string, attachments []*utils.TImageAsset) Message {
	msg := Message{
		ID:          c.nextID,
		Role:        role,
		Text:        text,
		Attachments: append([]*utils.TImageAsset{}, attachments...),
	}
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}
