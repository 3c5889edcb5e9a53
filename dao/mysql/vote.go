package mysql

import (
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VoteRepo 的所有写操作都必须在 Database.Transaction 传入的 tx 上执行，
// 投票状态机的读-判-写要和 vote_count 增量落在同一个事务里
type VoteRepo struct {
	db *Database
}

func NewVoteRepo(db *Database) *VoteRepo {
	return &VoteRepo{db: db}
}

func (r *VoteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.db
}

// SelectByPostUser 当前投票记录，找不到返回 (nil, nil)，代表 "没有投票"
func (r *VoteRepo) SelectByPostUser(tx *gorm.DB, postID, userID int64) (*models.Vote, error) {
	vote := new(models.Vote)
	res := r.conn(tx).First(vote, "post_id = ? AND user_id = ?", postID, userID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(res.Error, "mysql:VoteRepo.SelectByPostUser")
	}
	return vote, nil
}

func (r *VoteRepo) Insert(tx *gorm.DB, postID, userID int64, voteType int8) error {
	vote := &models.Vote{PostID: postID, UserID: userID, VoteType: voteType}
	err := r.conn(tx).Create(vote).Error
	return errors.Wrap(err, "mysql:VoteRepo.Insert")
}

// UpdateType 改 0 行说明并发下另一个事务动过这条记录，必须中止，
// 否则 vote_count 的增量会重复施加
func (r *VoteRepo) UpdateType(tx *gorm.DB, postID, userID int64, voteType int8) error {
	res := r.conn(tx).Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		UpdateColumn("vote_type", voteType)
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:VoteRepo.UpdateType")
	}
	if res.RowsAffected == 0 {
		return beacon.ErrVoteConflict
	}
	return nil
}

// Delete 同 UpdateType，删 0 行视为冲突
func (r *VoteRepo) Delete(tx *gorm.DB, postID, userID int64) error {
	res := r.conn(tx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Vote{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:VoteRepo.Delete")
	}
	if res.RowsAffected == 0 {
		return beacon.ErrVoteConflict
	}
	return nil
}
