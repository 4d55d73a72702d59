package engagementhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/events"
)

// HandleCommentCreated runs a comment event through the reward guard. A
// duplicate or self-comment acks without publishing anything; only a
// first-time grant emits a follow-up event.
func (h *EngagementHandlers) HandleCommentCreated(msg *message.Message) ([]*message.Message, error) {
	wrapped := h.handlerWrapper(
		"HandleCommentCreated",
		&events.CommentCreatedPayload{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			commentPayload := payload.(*events.CommentCreatedPayload)

			result, err := h.service.TrackComment(ctx,
				commentPayload.ChallengeID,
				commentPayload.CommentID,
				commentPayload.CommenterID,
				commentPayload.CreatorID,
			)
			if err != nil {
				return nil, err
			}
			if result.IsFailure() {
				h.logger.WarnContext(ctx, "Comment reward rejected",
					attr.CommentID("comment_id", commentPayload.CommentID),
					attr.Error(*result.Failure),
				)
				return nil, nil
			}
			if !result.Success.Granted {
				return nil, nil
			}

			grantedMsg, err := h.helpers.CreateResultMessage(msg, events.CommentRewardGrantedPayload{
				ChallengeID: result.Success.ChallengeID,
				CommentID:   result.Success.CommentID,
				CreatorID:   result.Success.CreatorID,
				Points:      result.Success.Points,
				Exp:         result.Success.Exp,
			}, events.CommentRewardGrantedV1)
			if err != nil {
				return nil, fmt.Errorf("failed to create reward granted message: %w", err)
			}
			return []*message.Message{grantedMsg}, nil
		},
	)
	return wrapped(msg)
}
