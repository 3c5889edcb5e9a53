package mysql

import (
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *Database
}

func NewPostRepo(db *Database) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.db
}

func (r *PostRepo) Insert(post *models.Post) error {
	res := r.db.db.Create(post)
	return errors.Wrap(res.Error, "mysql:PostRepo.Insert")
}

func (r *PostRepo) SelectByPostID(tx *gorm.DB, postID int64) (*models.Post, error) {
	post := new(models.Post)
	res := r.conn(tx).First(post, "post_id = ?", postID)
	if err := orNotFound(res.Error, beacon.ErrNoSuchPost, "mysql:PostRepo.SelectByPostID"); err != nil {
		return nil, err
	}
	return post, nil
}

// SelectDetailByPostID 帖子详情，带作者昵称和社区名
func (r *PostRepo) SelectDetailByPostID(postID int64) (*models.PostDTO, error) {
	detail := new(models.PostDTO)
	sqlStr := `SELECT p.post_id,
				p.title,
				p.content,
				p.community_id,
				c.name community_name,
				p.author_id,
				u.nickname author_nickname,
				p.vote_count,
				p.created_at
			FROM posts p
			JOIN communities c ON c.community_id = p.community_id
			JOIN users u ON u.user_id = p.author_id
			WHERE p.post_id = ?`

	res := r.db.db.Raw(sqlStr, postID).Scan(detail)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql:PostRepo.SelectDetailByPostID")
	}
	if res.RowsAffected == 0 {
		return nil, beacon.ErrNoSuchPost
	}
	return detail, nil
}

// SelectByCommunityID 社区页的帖子列表，新帖在前，正文截断
func (r *PostRepo) SelectByCommunityID(communityID int64) ([]*models.PostDTO, error) {
	contentLength := viper.GetInt64("service.post.content_max_length")
	list := make([]*models.PostDTO, 0)
	sqlStr := `SELECT p.post_id,
				p.title,
				substr(p.content, 1, ?) content,
				p.community_id,
				c.name community_name,
				p.author_id,
				u.nickname author_nickname,
				p.vote_count,
				p.created_at
			FROM posts p
			JOIN communities c ON c.community_id = p.community_id
			JOIN users u ON u.user_id = p.author_id
			WHERE p.community_id = ?
			ORDER BY p.created_at DESC, p.post_id DESC`

	res := r.db.db.Raw(sqlStr, contentLength, communityID).Scan(&list)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql:PostRepo.SelectByCommunityID")
	}
	return list, nil
}

// SelectByCommunityIDs 订阅流：取给定社区集合内的帖子
func (r *PostRepo) SelectByCommunityIDs(communityIDs []int64) ([]*models.PostDTO, error) {
	list := make([]*models.PostDTO, 0)
	if len(communityIDs) == 0 {
		return list, nil
	}
	contentLength := viper.GetInt64("service.post.content_max_length")
	sqlStr := `SELECT p.post_id,
				p.title,
				substr(p.content, 1, ?) content,
				p.community_id,
				c.name community_name,
				p.author_id,
				u.nickname author_nickname,
				p.vote_count,
				p.created_at
			FROM posts p
			JOIN communities c ON c.community_id = p.community_id
			JOIN users u ON u.user_id = p.author_id
			WHERE p.community_id IN ?
			ORDER BY p.created_at DESC, p.post_id DESC`

	res := r.db.db.Raw(sqlStr, contentLength, communityIDs).Scan(&list)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql:PostRepo.SelectByCommunityIDs")
	}
	return list, nil
}

// ApplyVoteDelta 在投票事务内增量维护 vote_count
func (r *PostRepo) ApplyVoteDelta(tx *gorm.DB, postID int64, delta int64) error {
	res := r.conn(tx).Model(&models.Post{}).
		Where("post_id = ?", postID).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta))
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:PostRepo.ApplyVoteDelta")
	}
	if res.RowsAffected == 0 {
		return beacon.ErrNoSuchPost
	}
	return nil
}

// SelectVoteCount 读当前聚合票数
func (r *PostRepo) SelectVoteCount(postID int64) (int64, error) {
	post, err := r.SelectByPostID(nil, postID)
	if err != nil {
		return 0, err
	}
	return post.VoteCount, nil
}

// ReconcileVoteCounts 用 votes 表重算 vote_count，作为增量维护的兜底
func (r *PostRepo) ReconcileVoteCounts() (int64, error) {
	sqlStr := `UPDATE posts
			SET vote_count = COALESCE((SELECT SUM(v.vote_type) FROM votes v WHERE v.post_id = posts.post_id), 0)`
	res := r.db.db.Exec(sqlStr)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "mysql:PostRepo.ReconcileVoteCounts")
	}
	return res.RowsAffected, nil
}
