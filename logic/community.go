package logic

import (
	"strings"

	"github.com/urdekcah/beacon/dao/mysql"
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// 订阅状态机的两个合法目标状态
const (
	SubscribeStateSubscribed = "SUBSCRIBED"
	SubscribeStateNone       = "NONE"
)

type CommunityLogic struct {
	db          *mysql.Database
	communities *mysql.CommunityRepo
	posts       *mysql.PostRepo
}

func NewCommunityLogic(db *mysql.Database, communities *mysql.CommunityRepo, posts *mysql.PostRepo) *CommunityLogic {
	return &CommunityLogic{db: db, communities: communities, posts: posts}
}

// ParseTags 逗号分隔的表单值拆成有序标签列表
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func allowed(value string, key string) bool {
	for _, v := range viper.GetStringSlice(key) {
		if v == value {
			return true
		}
	}
	return false
}

// Create 创建社区，创建者自动成为首个成员（仓储层在同一事务内完成）。
// 颜色和图标只收白名单里的值
func (l *CommunityLogic) Create(userID int64, params *models.ParamCreateCommunity) (*models.Community, error) {
	tags := ParseTags(params.Tags)
	if len(tags) > viper.GetInt("service.community.max_tags") {
		return nil, beacon.ErrTooManyTags
	}
	if !allowed(params.Color, "service.community.allowed_colors") {
		return nil, beacon.ErrInvalidColor
	}
	if !allowed(params.Icon, "service.community.allowed_icons") {
		return nil, beacon.ErrInvalidIcon
	}

	community := &models.Community{
		CommunityID: utils.GenSnowflakeID(),
		Name:        params.Name,
		Description: params.Description,
		Icon:        params.Icon,
		Color:       params.Color,
		Tags:        tags,
		CreatorID:   userID,
	}

	if err := l.communities.Insert(community); err != nil {
		return nil, err
	}
	return community, nil
}

// CommunityPage 社区页数据：详情、帖子列表、访问者的成员/管理员身份
type CommunityPage struct {
	Community *models.CommunityDTO
	Posts     []*models.PostDTO
	IsMember  bool
	IsAdmin   bool
}

func (l *CommunityLogic) GetPage(name string, viewer *models.Session) (*CommunityPage, error) {
	detail, err := l.communities.SelectDetailByName(name)
	if err != nil {
		return nil, err
	}

	posts, err := l.posts.SelectByCommunityID(detail.CommunityID)
	if err != nil {
		return nil, err
	}

	page := &CommunityPage{Community: detail, Posts: posts}
	if viewer != nil {
		page.IsMember, err = l.communities.IsMember(nil, detail.CommunityID, viewer.UserID)
		if err != nil {
			return nil, err
		}
		page.IsAdmin = detail.CreatorID == viewer.UserID
	}
	return page, nil
}

// UpdateSubscription 订阅开关状态机，见 ParamUpdateSubscriptions
//
// SUBSCRIBED：已是成员 -> ErrAlreadySubscribed，否则插入成员记录
// NONE：创建者 -> ErrOwnerCannotUnsubscribe；不是成员 -> ErrNotSubscribed；否则删除
// 其它值 -> ErrInvalidState
func (l *CommunityLogic) UpdateSubscription(userID int64, params *models.ParamUpdateSubscriptions) error {
	community, err := l.communities.SelectByCommunityID(params.CommunityID)
	if err != nil {
		return err
	}

	switch params.SubscribeState {
	case SubscribeStateSubscribed:
		// 查和插在同一个事务里，唯一键是并发下的兜底
		return l.db.Transaction(func(tx *gorm.DB) error {
			isMember, err := l.communities.IsMember(tx, community.CommunityID, userID)
			if err != nil {
				return err
			}
			if isMember {
				return beacon.ErrAlreadySubscribed
			}
			return l.communities.AddMember(tx, community.CommunityID, userID)
		})
	case SubscribeStateNone:
		if community.CreatorID == userID {
			// 创建者的成员身份是固定的，不看成员记录是否存在
			return beacon.ErrOwnerCannotUnsubscribe
		}
		return l.communities.RemoveMember(nil, community.CommunityID, userID)
	default:
		return beacon.ErrInvalidState
	}
}

// UserCommunities 用户订阅的社区列表
func (l *CommunityLogic) UserCommunities(userID int64) ([]models.Community, error) {
	list, err := l.communities.SelectUserCommunities(userID)
	return list, errors.Wrap(err, "logic:UserCommunities")
}
