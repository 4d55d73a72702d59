package engagementhandlers

import "github.com/ThreeDotsLabs/watermill/message"

// Handlers is the engagement event handler surface registered on the router.
type Handlers interface {
	HandleCommentCreated(msg *message.Message) ([]*message.Message, error)
}
