package models

/*
	存放所有有关请求参数的结构体
*/

/* Auth */
type ParamSignup struct {
	Username        string `json:"username" binding:"required,min=3,max=50,handle"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Birthdate       string `json:"birthdate" binding:"required,datetime=2006-01-02"`
	Nickname        string `json:"nickname" binding:"required,min=3,max=150"`
	Bio             string `json:"bio" binding:"omitempty,max=512"`
}

type ParamSignin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

/* Community */
type ParamCreateCommunity struct {
	Name        string `json:"name" binding:"required,min=3,max=21,handle"`
	Description string `json:"description" binding:"required,min=3,max=150"`
	Icon        string `json:"icon" binding:"required"`
	Color       string `json:"color" binding:"required"`
	Tags        string `json:"tags" binding:"required"` // 逗号分隔，拆分后最多 5 个
}

// SubscribeState 不用 oneof 校验，非法值要走 StateError 分支
type ParamUpdateSubscriptions struct {
	CommunityID    int64  `json:"communityId,string" binding:"required"`
	SubscribeState string `json:"subscribeState" binding:"required"`
}

/* Post */
type ParamCreatePost struct {
	Title         string `json:"title" binding:"required,min=1,max=128"`
	Content       string `json:"content" binding:"required,max=8192"`
	CommunityName string `json:"communityName" binding:"required"`
}

type ParamUpdatePostVoteState struct {
	CommunityID int64  `json:"communityId,string" binding:"required"`
	PostID      int64  `json:"postId,string" binding:"required"`
	VoteState   string `json:"voteState" binding:"required,oneof=UP DOWN"`
}
