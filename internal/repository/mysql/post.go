package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository/mysql/model"
)

// errNotApplied rolls back a conditional like update whose condition failed.
var errNotApplied = errors.New("like condition not met")

type postRepository struct {
	DB *gorm.DB
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository will create an implementation of domain.PostRepository
func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

// GetByID reads the row, likes and reply links inside one transaction so the
// snapshot cannot mix a like or reply committed between the reads.
func (m *postRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	var res domain.Post
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		posts, err := hydrate(tx, []model.Post{post})
		if err != nil {
			return err
		}
		res = posts[0]
		return nil
	})
	if err != nil {
		return domain.Post{}, translateError(err)
	}
	return res, nil
}

// Fetch lists root posts whose author is not in excludeAuthorIDs.
func (m *postRepository) Fetch(ctx context.Context, excludeAuthorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return m.list(ctx, after, num, func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_reply = ?", false)
		if len(excludeAuthorIDs) > 0 {
			db = db.Where("author_id NOT IN ?", excludeAuthorIDs)
		}
		return db
	})
}

func (m *postRepository) FetchByAuthors(ctx context.Context, authorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}
	return m.list(ctx, after, num, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN ?", authorIDs)
	})
}

func (m *postRepository) FetchLikedBy(ctx context.Context, userID string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return m.list(ctx, after, num, func(db *gorm.DB) *gorm.DB {
		liked := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.PostLike{}).
			Select("post_id").
			Where("user_id = ?", userID)
		return db.Where("id IN (?)", liked)
	})
}

func (m *postRepository) list(ctx context.Context, after domain.Cursor, num int64, match func(*gorm.DB) *gorm.DB) ([]domain.Post, error) {
	var res []domain.Post
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.Post
		err := tx.Model(&model.Post{}).
			Scopes(match, newestAfter(after, num)).
			Find(&rows).Error
		if err != nil {
			return err
		}
		res, err = hydrate(tx, rows)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// hydrate loads likes and reply links for a page of posts with one query each.
func hydrate(tx *gorm.DB, rows []model.Post) ([]domain.Post, error) {
	res := make([]domain.Post, 0, len(rows))
	if len(rows) == 0 {
		return res, nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var likes []model.PostLike
	err := tx.Where("post_id IN ?", ids).Order("created_at").Find(&likes).Error
	if err != nil {
		return nil, err
	}
	likedBy := make(map[string][]string, len(rows))
	for _, l := range likes {
		likedBy[l.PostID] = append(likedBy[l.PostID], l.UserID)
	}

	var links []model.PostReply
	err = tx.Where("parent_id IN ?", ids).Order("seq").Find(&links).Error
	if err != nil {
		return nil, err
	}
	replies := make(map[string][]string, len(rows))
	for _, r := range links {
		replies[r.ParentID] = append(replies[r.ParentID], r.ReplyID)
	}

	for i := range rows {
		res = append(res, rows[i].ToDomain(likedBy[rows[i].ID], replies[rows[i].ID]))
	}
	return res, nil
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.NewPostFromDomain(p)).Error; err != nil {
			return err
		}
		if len(p.LikedBy) > 0 {
			now := time.Now()
			likes := make([]model.PostLike, len(p.LikedBy))
			for i, uid := range p.LikedBy {
				likes[i] = model.PostLike{PostID: p.ID, UserID: uid, CreatedAt: now}
			}
			if err := tx.Create(&likes).Error; err != nil {
				return err
			}
		}
		if len(p.Replies) > 0 {
			replies := make([]model.PostReply, len(p.Replies))
			for i, rid := range p.Replies {
				replies[i] = model.PostReply{ParentID: p.ID, ReplyID: rid}
			}
			if err := tx.Create(&replies).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err)
}

func (m *postRepository) Delete(ctx context.Context, id string) error {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Post{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("parent_id = ?", id).Delete(&model.PostReply{}).Error
	})
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return translateError(err)
}

// AddLike inserts the like row and bumps the counter in one transaction. The
// composite key on post_likes turns a second like into a duplicate entry.
func (m *postRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := model.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now()}
		if err := tx.Create(&like).Error; err != nil {
			if isDuplicate(err) {
				return errNotApplied
			}
			return err
		}
		result := tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_counter", gorm.Expr("like_counter + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotApplied
		}
		return nil
	})
	return applied(err)
}

func (m *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotApplied
		}
		result = tx.Model(&model.Post{}).
			Where("id = ? AND like_counter > 0", postID).
			UpdateColumn("like_counter", gorm.Expr("like_counter - ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNotApplied
		}
		return nil
	})
	return applied(err)
}

func applied(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errNotApplied):
		return false, nil
	default:
		return false, translateError(err)
	}
}

func (m *postRepository) AppendReply(ctx context.Context, parentID, replyID string) error {
	db := m.DB.WithContext(ctx)
	if err := m.mustExist(db, parentID); err != nil {
		return err
	}
	link := model.PostReply{ParentID: parentID, ReplyID: replyID}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
	return translateError(err)
}

func (m *postRepository) RemoveReply(ctx context.Context, parentID, replyID string) error {
	db := m.DB.WithContext(ctx)
	if err := m.mustExist(db, parentID); err != nil {
		return err
	}
	err := db.Where("parent_id = ? AND reply_id = ?", parentID, replyID).Delete(&model.PostReply{}).Error
	return translateError(err)
}

func (m *postRepository) FetchIDs(ctx context.Context, afterID string, limit int64) (ids []string, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Post{}).
		Select("id").
		Where("id > ?", afterID).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return ids, translateError(err)
}

func (m *postRepository) mustExist(db *gorm.DB, postID string) error {
	var count int64
	if err := db.Model(&model.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}
