package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"column:comment_id;primaryKey;autoIncrement"`
	Text     string    `gorm:"column:comment_text;not null;size:2000"`
	ItemID   int64     `gorm:"column:item_id;index;not null"`
	AuthorID int64     `gorm:"column:author_id;not null"`
	Created  time.Time `gorm:"column:created;not null;autoCreateTime"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of
// item.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID retrieves a comment with its author name resolved.
func (r *GormCommentRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Comment, error) {
	var model CommentModel
	if err := r.db.WithContext(ctx).Where("comment_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("comment", id)
		}
		return nil, fmt.Errorf("failed to find comment by id: %w", err)
	}
	comments, err := r.withAuthorNames(ctx, []CommentModel{model})
	if err != nil {
		return nil, err
	}
	return comments[0], nil
}

// FindByItemID lists the item's comments, oldest first.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("comment_id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}
	return r.withAuthorNames(ctx, models)
}

// Save persists a new comment and returns the assigned id.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) (int64, error) {
	model := CommentModel{
		Text:     c.Text(),
		ItemID:   c.ItemID(),
		AuthorID: c.AuthorID(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to save comment: %w", err)
	}
	return model.ID, nil
}

// withAuthorNames batch-loads the author names referenced by the given
// comment rows and assembles domain comments.
func (r *GormCommentRepository) withAuthorNames(ctx context.Context, models []CommentModel) ([]*itemDomain.Comment, error) {
	if len(models) == 0 {
		return []*itemDomain.Comment{}, nil
	}

	authorIDs := make([]int64, 0, len(models))
	for _, m := range models {
		authorIDs = append(authorIDs, m.AuthorID)
	}
	var userModels []UserModel
	if err := r.db.WithContext(ctx).Where("user_id IN ?", authorIDs).Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment authors: %w", err)
	}
	names := make(map[int64]string, len(userModels))
	for _, u := range userModels {
		names[u.ID] = u.Name
	}

	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = itemDomain.ReconstructComment(m.ID, m.Text, m.ItemID, m.AuthorID, names[m.AuthorID], m.Created)
	}
	return comments, nil
}
