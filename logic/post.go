package logic

import (
	"github.com/urdekcah/beacon/dao/mysql"
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 投票开关的两个合法方向
const (
	VoteStateUp   = "UP"
	VoteStateDown = "DOWN"
)

type PostLogic struct {
	db          *mysql.Database
	posts       *mysql.PostRepo
	communities *mysql.CommunityRepo
	votes       *mysql.VoteRepo
}

func NewPostLogic(db *mysql.Database, posts *mysql.PostRepo, communities *mysql.CommunityRepo, votes *mysql.VoteRepo) *PostLogic {
	return &PostLogic{db: db, posts: posts, communities: communities, votes: votes}
}

func (l *PostLogic) Create(userID int64, params *models.ParamCreatePost) (*models.Post, error) {
	community, err := l.communities.SelectByName(params.CommunityName)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		PostID:      utils.GenSnowflakeID(),
		Title:       params.Title,
		Content:     params.Content,
		CommunityID: community.CommunityID,
		AuthorID:    userID,
	}
	if err := l.posts.Insert(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Detail 单帖页：帖子必须属于路径里的社区
func (l *PostLogic) Detail(communityName string, postID int64) (*models.PostDTO, error) {
	community, err := l.communities.SelectByName(communityName)
	if err != nil {
		return nil, err
	}

	detail, err := l.posts.SelectDetailByPostID(postID)
	if err != nil {
		return nil, err
	}
	if detail.CommunityID != community.CommunityID {
		return nil, beacon.ErrNoSuchPost
	}
	return detail, nil
}

// Vote 投票开关状态机：
//
// 没投过 -> 插入；同方向 -> 删除（取消）；反方向 -> 改类型
//
// 读-判-写和 vote_count 增量都在一个事务内。并发兜底：唯一 (post_id, user_id)
// 拦截双插，删/改命中 0 行报 ErrVoteConflict 中止事务，增量不会重复施加
func (l *PostLogic) Vote(userID int64, params *models.ParamUpdatePostVoteState) (int64, error) {
	if _, err := l.communities.SelectByCommunityID(params.CommunityID); err != nil {
		return 0, err
	}

	var direction int8
	switch params.VoteState {
	case VoteStateUp:
		direction = models.VoteUp
	case VoteStateDown:
		direction = models.VoteDown
	default:
		// binding 层有 oneof 校验，这里兜底直接构造的调用
		return 0, beacon.ErrInvalidVoteState
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		post, err := l.posts.SelectByPostID(tx, params.PostID)
		if err != nil {
			return err
		}
		if post.CommunityID != params.CommunityID {
			return beacon.ErrPostOutsideCommunity
		}

		current, err := l.votes.SelectByPostUser(tx, params.PostID, userID)
		if err != nil {
			return err
		}

		var delta int64
		switch {
		case current == nil:
			if err := l.votes.Insert(tx, params.PostID, userID, direction); err != nil {
				return err
			}
			delta = int64(direction)
		case current.VoteType == direction:
			// 同方向再点一次是取消
			if err := l.votes.Delete(tx, params.PostID, userID); err != nil {
				return err
			}
			delta = -int64(direction)
		default:
			if err := l.votes.UpdateType(tx, params.PostID, userID, direction); err != nil {
				return err
			}
			delta = 2 * int64(direction)
		}

		return l.posts.ApplyVoteDelta(tx, params.PostID, delta)
	})
	if err != nil {
		return 0, err
	}

	// 提交后重读聚合票数作为响应
	count, err := l.posts.SelectVoteCount(params.PostID)
	return count, errors.Wrap(err, "logic:Vote: SelectVoteCount")
}

// Feed 订阅流：来自用户已订阅社区的帖子
func (l *PostLogic) Feed(userID int64) ([]models.Community, []*models.PostDTO, error) {
	communities, err := l.communities.SelectUserCommunities(userID)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(communities))
	for _, c := range communities {
		ids = append(ids, c.CommunityID)
	}

	posts, err := l.posts.SelectByCommunityIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	return communities, posts, nil
}
