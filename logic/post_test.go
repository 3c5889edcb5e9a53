package logic

import (
	"testing"

	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func TestCreatePostUnknownCommunity(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")

	_, err := env.posts.Create(author.UserID, &models.ParamCreatePost{
		Title:         "hello",
		Content:       "text",
		CommunityName: "nope",
	})
	if !errors.Is(err, beacon.ErrNoSuchCommunity) {
		t.Fatalf("expected ErrNoSuchCommunity, got %v", err)
	}
}

func TestPostDetailEnforcesCommunity(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	env.createCommunity(t, author.UserID, "golang")
	env.createCommunity(t, author.UserID, "rustlang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	detail, err := env.posts.Detail("golang", post.PostID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.Title != "hello" || detail.CommunityName != "golang" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	// 帖子挂在别的社区路径下按不存在处理
	if _, err := env.posts.Detail("rustlang", post.PostID); !errors.Is(err, beacon.ErrNoSuchPost) {
		t.Fatalf("expected ErrNoSuchPost, got %v", err)
	}
}

func TestVoteToggle(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	community := env.createCommunity(t, author.UserID, "golang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	vote := func(userID int64, state string) (int64, error) {
		return env.posts.Vote(userID, &models.ParamUpdatePostVoteState{
			CommunityID: community.CommunityID,
			PostID:      post.PostID,
			VoteState:   state,
		})
	}

	// NONE -> UP
	count, err := vote(author.UserID, "UP")
	if err != nil || count != 1 {
		t.Fatalf("first UP: count=%d, err=%v", count, err)
	}

	// UP -> UP 是取消
	count, err = vote(author.UserID, "UP")
	if err != nil || count != 0 {
		t.Fatalf("second UP: count=%d, err=%v", count, err)
	}
	if v, _ := env.voteRepo.SelectByPostUser(nil, post.PostID, author.UserID); v != nil {
		t.Fatalf("vote row should be gone, got %+v", v)
	}

	// NONE -> UP -> DOWN 翻转差值是 2
	if _, err := vote(author.UserID, "UP"); err != nil {
		t.Fatalf("UP: %v", err)
	}
	count, err = vote(author.UserID, "DOWN")
	if err != nil || count != -1 {
		t.Fatalf("flip to DOWN: count=%d, err=%v", count, err)
	}

	// DOWN -> DOWN 取消，回到 0
	count, err = vote(author.UserID, "DOWN")
	if err != nil || count != 0 {
		t.Fatalf("second DOWN: count=%d, err=%v", count, err)
	}
}

func TestVoteCancelLosingRaceRollsBack(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	community := env.createCommunity(t, author.UserID, "golang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	params := &models.ParamUpdatePostVoteState{
		CommunityID: community.CommunityID,
		PostID:      post.PostID,
		VoteState:   VoteStateUp,
	}
	if _, err := env.posts.Vote(author.UserID, params); err != nil {
		t.Fatalf("UP: %v", err)
	}
	if _, err := env.posts.Vote(author.UserID, params); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// 两个取消并发时都可能读到同一条 UP 记录。先到的正常删掉，
	// 后到的重放同样的写序列：增量先落下，随后删 0 行报冲突，
	// 整个事务必须回滚，增量不能留下来
	err := env.db.Transaction(func(tx *gorm.DB) error {
		if err := env.postRepo.ApplyVoteDelta(tx, post.PostID, -1); err != nil {
			return err
		}
		return env.voteRepo.Delete(tx, post.PostID, author.UserID)
	})
	if !errors.Is(err, beacon.ErrVoteConflict) {
		t.Fatalf("losing canceller: expected ErrVoteConflict, got %v", err)
	}

	count, err := env.postRepo.SelectVoteCount(post.PostID)
	if err != nil {
		t.Fatalf("SelectVoteCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("vote_count after rolled-back cancel: %d", count)
	}
	if v, _ := env.voteRepo.SelectByPostUser(nil, post.PostID, author.UserID); v != nil {
		t.Fatalf("unexpected vote row: %+v", v)
	}
}

func TestVoteRejectsBogusState(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	community := env.createCommunity(t, author.UserID, "golang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	_, err := env.posts.Vote(author.UserID, &models.ParamUpdatePostVoteState{
		CommunityID: community.CommunityID,
		PostID:      post.PostID,
		VoteState:   "SIDEWAYS",
	})
	if !errors.Is(err, beacon.ErrInvalidVoteState) {
		t.Fatalf("expected ErrInvalidVoteState, got %v", err)
	}
}

func TestVoteAggregatesAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	bob := env.signup(t, "bob")
	community := env.createCommunity(t, author.UserID, "golang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	params := &models.ParamUpdatePostVoteState{
		CommunityID: community.CommunityID,
		PostID:      post.PostID,
		VoteState:   "UP",
	}
	if _, err := env.posts.Vote(author.UserID, params); err != nil {
		t.Fatalf("alice UP: %v", err)
	}
	count, err := env.posts.Vote(bob.UserID, params)
	if err != nil || count != 2 {
		t.Fatalf("bob UP: count=%d, err=%v", count, err)
	}
}

func TestVoteRejectsMismatches(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	community := env.createCommunity(t, author.UserID, "golang")
	other := env.createCommunity(t, author.UserID, "rustlang")
	post := env.createPost(t, author.UserID, "golang", "hello")

	_, err := env.posts.Vote(author.UserID, &models.ParamUpdatePostVoteState{
		CommunityID: 999,
		PostID:      post.PostID,
		VoteState:   "UP",
	})
	if !errors.Is(err, beacon.ErrNoSuchCommunity) {
		t.Fatalf("unknown community: expected ErrNoSuchCommunity, got %v", err)
	}

	_, err = env.posts.Vote(author.UserID, &models.ParamUpdatePostVoteState{
		CommunityID: community.CommunityID,
		PostID:      999,
		VoteState:   "UP",
	})
	if !errors.Is(err, beacon.ErrNoSuchPost) {
		t.Fatalf("unknown post: expected ErrNoSuchPost, got %v", err)
	}

	_, err = env.posts.Vote(author.UserID, &models.ParamUpdatePostVoteState{
		CommunityID: other.CommunityID,
		PostID:      post.PostID,
		VoteState:   "UP",
	})
	if !errors.Is(err, beacon.ErrPostOutsideCommunity) {
		t.Fatalf("mismatched community: expected ErrPostOutsideCommunity, got %v", err)
	}

	// 被拒的投票不留痕迹
	count, err := env.postRepo.SelectVoteCount(post.PostID)
	if err != nil || count != 0 {
		t.Fatalf("vote count after rejects: %d, %v", count, err)
	}
}

func TestFeedOnlySubscribedCommunities(t *testing.T) {
	env := newTestEnv(t)
	author := env.signup(t, "alice")
	bob := env.signup(t, "bob")
	golang := env.createCommunity(t, author.UserID, "golang")
	env.createCommunity(t, author.UserID, "rustlang")
	env.createPost(t, author.UserID, "golang", "go post")
	env.createPost(t, author.UserID, "rustlang", "rust post")

	// bob 什么都没订阅
	communities, posts, err := env.posts.Feed(bob.UserID)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(communities) != 0 || len(posts) != 0 {
		t.Fatalf("empty feed: %d communities, %d posts", len(communities), len(posts))
	}

	if err := env.communities.UpdateSubscription(bob.UserID, &models.ParamUpdateSubscriptions{
		CommunityID:    golang.CommunityID,
		SubscribeState: SubscribeStateSubscribed,
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	communities, posts, err = env.posts.Feed(bob.UserID)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(communities) != 1 || communities[0].Name != "golang" {
		t.Fatalf("feed communities: %+v", communities)
	}
	if len(posts) != 1 || posts[0].Title != "go post" {
		t.Fatalf("feed posts: %+v", posts)
	}

	// 创建者订阅了两个社区，两边的帖子都在
	_, posts, err = env.posts.Feed(author.UserID)
	if err != nil {
		t.Fatalf("Feed(author): %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("author feed posts: %+v", posts)
	}
}
