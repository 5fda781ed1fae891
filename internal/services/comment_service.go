package services

import (
	"context"
	"grammable/internal/enums"
	"grammable/internal/errs"
	"grammable/internal/metrics"
	"grammable/internal/models"
	"grammable/internal/repositories"
	"grammable/internal/validators"

	log "github.com/sirupsen/logrus"
)

type CommentService struct {
	commentRepo *repositories.CommentRepository
	gramService *GramService
	feedService *FeedService
}

func NewCommentService(
	commentRepo *repositories.CommentRepository,
	gramService *GramService,
	feedService *FeedService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		gramService: gramService,
		feedService: feedService,
	}
}

// CreateComment attaches a comment by userID to an existing gram.
func (cs *CommentService) CreateComment(ctx context.Context, gramID, userID uint, form *models.CommentForm) (*models.Comment, *models.Gram, []error) {
	gram, errors := cs.gramService.GetGram(gramID)
	if len(errors) > 0 {
		return nil, nil, errors
	}

	if validationErrs := validators.ValidateComment(form); len(validationErrs) > 0 {
		return nil, gram, validationErrs
	}

	comment, err := cs.commentRepo.CreateComment(&models.Comment{
		Message: form.Message,
		GramID:  gram.ID,
		UserID:  userID,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create comment")
		return nil, gram, []error{errs.ErrInternal}
	}

	metrics.CommentsCreated.Inc()
	cs.feedService.PublishQuietly(ctx, &models.FeedEvent{
		Event:   enums.FEED_EVENT_COMMENT_CREATED,
		GramID:  gram.ID,
		UserID:  userID,
		Payload: comment.ToCommentResponse(),
	})
	return comment, gram, nil
}
