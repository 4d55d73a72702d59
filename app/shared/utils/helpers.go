package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers bundles the message plumbing shared by all event handlers.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, out interface{}) error
	CreateResultMessage(original *message.Message, payload interface{}, topic string) (*message.Message, error)
}

type helpers struct{}

func NewHelpers() Helpers {
	return helpers{}
}

func (helpers) UnmarshalPayload(msg *message.Message, out interface{}) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal payload for message %s: %w", msg.UUID, err)
	}
	return nil
}

// CreateResultMessage builds a follow-up message carrying the original
// correlation id and the topic it should be published to.
func (helpers) CreateResultMessage(original *message.Message, payload interface{}, topic string) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("topic", topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
	}
	return msg, nil
}
