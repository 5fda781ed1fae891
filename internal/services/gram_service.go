package services

import (
	"context"
	"errors"
	"grammable/internal/enums"
	"grammable/internal/errs"
	"grammable/internal/metrics"
	"grammable/internal/models"
	"grammable/internal/repositories"
	"grammable/internal/validators"
	"mime/multipart"

	log "github.com/sirupsen/logrus"
)

type GramService struct {
	gramRepo           *repositories.GramRepository
	fileManagerService *FileManagerService
	feedService        *FeedService
}

func NewGramService(
	gramRepo *repositories.GramRepository,
	fileManagerService *FileManagerService,
	feedService *FeedService,
) *GramService {
	return &GramService{
		gramRepo:           gramRepo,
		fileManagerService: fileManagerService,
		feedService:        feedService,
	}
}

func (gs *GramService) ListGrams(page, size int) (*models.GramListResponse, []error) {
	grams, total, err := gs.gramRepo.GetGramsWithPagination(page, size)
	if err != nil {
		log.WithError(err).Error("Failed to list grams")
		return nil, []error{errs.ErrInternal}
	}

	responses := []*models.GramResponse{}
	for i := range grams {
		responses = append(responses, grams[i].ToGramResponse())
	}
	return &models.GramListResponse{
		Grams: responses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (gs *GramService) GetGram(id uint) (*models.Gram, []error) {
	gram, err := gs.gramRepo.FindGramByID(id)
	if err != nil {
		return nil, []error{gs.repositoryError(err)}
	}
	return gram, nil
}

// GetOwnedGram loads a gram and checks that userID created it.
func (gs *GramService) GetOwnedGram(id, userID uint) (*models.Gram, []error) {
	gram, errors := gs.GetGram(id)
	if len(errors) > 0 {
		return nil, errors
	}
	if !gram.IsOwnedBy(userID) {
		return gram, []error{errs.ErrForbidden}
	}
	return gram, nil
}

// CreateGram validates before touching storage, so an invalid gram never uploads a picture.
func (gs *GramService) CreateGram(ctx context.Context, userID uint, form *models.GramForm, picture *multipart.FileHeader) (*models.Gram, []error) {
	if validationErrs := validators.ValidateGram(form); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	gram := &models.Gram{
		Message: form.Message,
		UserID:  userID,
	}

	if picture != nil {
		url, key, err := gs.fileManagerService.UploadGramPicture(ctx, picture)
		if err != nil {
			return nil, []error{err}
		}
		gram.Picture = &url
		gram.PictureKey = &key
	}

	if _, err := gs.gramRepo.CreateGram(gram); err != nil {
		log.WithError(err).Error("Failed to create gram")
		if gram.PictureKey != nil {
			gs.fileManagerService.DeleteGramPicture(ctx, *gram.PictureKey)
		}
		return nil, []error{errs.ErrInternal}
	}

	if created, err := gs.gramRepo.FindGramByID(gram.ID); err == nil {
		gram = created
	}

	metrics.GramsCreated.Inc()
	gs.feedService.PublishQuietly(ctx, &models.FeedEvent{
		Event:   enums.FEED_EVENT_GRAM_CREATED,
		GramID:  gram.ID,
		UserID:  userID,
		Payload: gram.ToGramResponse(),
	})
	return gram, nil
}

// UpdateGram returns the stored gram alongside validation errors so the form can be shown again.
func (gs *GramService) UpdateGram(ctx context.Context, id, userID uint, form *models.GramForm) (*models.Gram, []error) {
	gram, errors := gs.GetOwnedGram(id, userID)
	if len(errors) > 0 {
		return gram, errors
	}

	if validationErrs := validators.ValidateGram(form); len(validationErrs) > 0 {
		return gram, validationErrs
	}

	if err := gs.gramRepo.UpdateGramMessage(gram, form.Message); err != nil {
		return gram, []error{gs.repositoryError(err)}
	}
	gram.Message = form.Message

	gs.feedService.PublishQuietly(ctx, &models.FeedEvent{
		Event:   enums.FEED_EVENT_GRAM_UPDATED,
		GramID:  gram.ID,
		UserID:  userID,
		Payload: gram.ToGramResponse(),
	})
	return gram, nil
}

func (gs *GramService) DestroyGram(ctx context.Context, id, userID uint) []error {
	gram, errors := gs.GetOwnedGram(id, userID)
	if len(errors) > 0 {
		return errors
	}

	if err := gs.gramRepo.DeleteGram(gram); err != nil {
		return []error{gs.repositoryError(err)}
	}
	if gram.PictureKey != nil {
		gs.fileManagerService.DeleteGramPicture(ctx, *gram.PictureKey)
	}

	metrics.GramsDestroyed.Inc()
	gs.feedService.PublishQuietly(ctx, &models.FeedEvent{
		Event:  enums.FEED_EVENT_GRAM_DESTROYED,
		GramID: gram.ID,
		UserID: userID,
	})
	return nil
}

func (gs *GramService) repositoryError(err error) error {
	if errors.Is(err, errs.ErrGramNotFound) {
		return errs.ErrGramNotFound
	}
	log.WithError(err).Error("Gram repository error")
	return errs.ErrInternal
}
