package mysql

import (
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommunityRepo struct {
	db *Database
}

func NewCommunityRepo(db *Database) *CommunityRepo {
	return &CommunityRepo{db: db}
}

// conn 返回事务句柄或连接池，仓储方法都经过它，方便在事务内复用
func (r *CommunityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.db
}

// Insert 创建社区并把创建者写成首个成员，两条语句在同一个事务内
func (r *CommunityRepo) Insert(community *models.Community) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			if isDuplicate(err) {
				return beacon.ErrCommunityExist
			}
			return errors.Wrap(err, "mysql:CommunityRepo.Insert: create community")
		}
		if err := r.AddMember(tx, community.CommunityID, community.CreatorID); err != nil {
			return err
		}
		return nil
	})
	return err
}

// SelectByName 社区名大小写不敏感
func (r *CommunityRepo) SelectByName(name string) (*models.Community, error) {
	community := new(models.Community)
	res := r.db.db.First(community, "LOWER(name) = LOWER(?)", name)
	if err := orNotFound(res.Error, beacon.ErrNoSuchCommunity, "mysql:CommunityRepo.SelectByName"); err != nil {
		return nil, err
	}
	return community, nil
}

func (r *CommunityRepo) SelectByCommunityID(communityID int64) (*models.Community, error) {
	community := new(models.Community)
	res := r.db.db.First(community, "community_id = ?", communityID)
	if err := orNotFound(res.Error, beacon.ErrNoSuchCommunity, "mysql:CommunityRepo.SelectByCommunityID"); err != nil {
		return nil, err
	}
	return community, nil
}

// SelectDetailByName 带上创建者昵称的社区详情
func (r *CommunityRepo) SelectDetailByName(name string) (*models.CommunityDTO, error) {
	community, err := r.SelectByName(name)
	if err != nil {
		return nil, err
	}

	detail := &models.CommunityDTO{
		CommunityID: community.CommunityID,
		Name:        community.Name,
		Description: community.Description,
		Icon:        community.Icon,
		Color:       community.Color,
		Tags:        community.Tags,
		CreatorID:   community.CreatorID,
		CreatedAt:   community.CreatedAt,
	}

	creator := new(models.User)
	res := r.db.db.First(creator, "user_id = ?", community.CreatorID)
	if res.Error == nil {
		detail.CreatorNickname = creator.Nickname
	} else if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(res.Error, "mysql:CommunityRepo.SelectDetailByName: creator")
	}
	return detail, nil
}

func (r *CommunityRepo) IsMember(tx *gorm.DB, communityID, userID int64) (bool, error) {
	var count int64
	res := r.conn(tx).Model(&models.CommunityMembership{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "mysql:CommunityRepo.IsMember")
	}
	return count > 0, nil
}

func (r *CommunityRepo) AddMember(tx *gorm.DB, communityID, userID int64) error {
	membership := &models.CommunityMembership{CommunityID: communityID, UserID: userID}
	if err := r.conn(tx).Create(membership).Error; err != nil {
		if isDuplicate(err) {
			// 唯一 (community_id, user_id) 是并发重复订阅的兜底
			return beacon.ErrAlreadySubscribed
		}
		return errors.Wrap(err, "mysql:CommunityRepo.AddMember")
	}
	return nil
}

func (r *CommunityRepo) RemoveMember(tx *gorm.DB, communityID, userID int64) error {
	res := r.conn(tx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&models.CommunityMembership{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "mysql:CommunityRepo.RemoveMember")
	}
	if res.RowsAffected == 0 {
		return beacon.ErrNotSubscribed
	}
	return nil
}

// SelectUserCommunities 用户订阅的全部社区
func (r *CommunityRepo) SelectUserCommunities(userID int64) ([]models.Community, error) {
	var list []models.Community
	sqlStr := `SELECT c.*
			FROM community_memberships cm
			JOIN communities c ON c.community_id = cm.community_id
			WHERE cm.user_id = ?`
	res := r.db.db.Raw(sqlStr, userID).Scan(&list)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "mysql:CommunityRepo.SelectUserCommunities")
	}
	return list, nil
}
