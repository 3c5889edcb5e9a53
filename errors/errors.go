package beacon

import "github.com/pkg/errors"

var (
	// user
	ErrUserExist     = errors.New("username already exists")
	ErrEmailExist    = errors.New("email already exists")
	ErrUserNotExist  = errors.New("user does not exist")
	ErrWrongPassword = errors.New("invalid email or password")

	// community
	ErrNoSuchCommunity        = errors.New("community not found")
	ErrCommunityExist         = errors.New("community name already exists")
	ErrTooManyTags            = errors.New("you can only add up to 5 tags")
	ErrInvalidColor           = errors.New("invalid color")
	ErrInvalidIcon            = errors.New("invalid icon")
	ErrAlreadySubscribed      = errors.New("already subscribed")
	ErrNotSubscribed          = errors.New("not subscribed")
	ErrOwnerCannotUnsubscribe = errors.New("owner cannot unsubscribe")
	ErrInvalidState           = errors.New("invalid subscription state")

	// post
	ErrNoSuchPost           = errors.New("post not found")
	ErrPostOutsideCommunity = errors.New("post does not belong to this community")
	ErrInvalidVoteState     = errors.New("invalid vote state")
	ErrVoteConflict         = errors.New("vote changed concurrently")

	// session
	ErrNoSuchSession = errors.New("session not found")
)
