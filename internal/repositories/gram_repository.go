package repositories

import (
	"errors"
	"grammable/internal/errs"
	"grammable/internal/models"
	"grammable/internal/utils"

	"gorm.io/gorm"
)

type GramRepository struct {
	db *gorm.DB
}

func NewGramRepository(db *gorm.DB) *GramRepository {
	return &GramRepository{
		db: db,
	}
}

func preloadGram(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Preload("Comments.User")
}

func (gr *GramRepository) CreateGram(gram *models.Gram) (*models.Gram, error) {
	result := gr.db.Create(gram)
	if err := result.Error; err != nil {
		return nil, err
	}
	if result.RowsAffected <= 0 {
		return nil, errs.ErrInternal
	}
	return gram, nil
}

func (gr *GramRepository) FindGramByID(id uint) (*models.Gram, error) {
	if id == 0 {
		return nil, errs.ErrGramNotFound
	}
	var gram models.Gram
	if err := gr.db.Scopes(preloadGram).First(&gram, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrGramNotFound
		}
		return nil, err
	}
	return &gram, nil
}

func (gr *GramRepository) GetGramsWithPagination(page, size int) ([]models.Gram, int64, error) {
	var grams []models.Gram
	var total int64

	transactionErr := gr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(preloadGram, utils.Paginate(page, size)).
			Order("created_at DESC").
			Order("id DESC").
			Find(&grams).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Gram{}).Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		return nil, 0, transactionErr
	}
	return grams, total, nil
}

// UpdateGramMessage only ever touches the message column; the owner is immutable.
func (gr *GramRepository) UpdateGramMessage(gram *models.Gram, message string) error {
	result := gr.db.Model(gram).Update("message", message)
	if err := result.Error; err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return errs.ErrGramNotFound
	}
	return nil
}

func (gr *GramRepository) DeleteGram(gram *models.Gram) error {
	return gr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gram_id = ?", gram.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(gram)
		if err := result.Error; err != nil {
			return err
		}
		if result.RowsAffected == 0 {
			return errs.ErrGramNotFound
		}
		return nil
	})
}
