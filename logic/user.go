package logic

import (
	"time"

	"github.com/urdekcah/beacon/dao/mysql"
	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type UserLogic struct {
	users    *mysql.UserRepo
	sessions SessionStore
}

func NewUserLogic(users *mysql.UserRepo, sessions SessionStore) *UserLogic {
	return &UserLogic{users: users, sessions: sessions}
}

// Signup 注册并直接建立会话，返回会话 cookie 值
//
// 用户名/邮箱冲突由存储层唯一键兜底，这里不做先查后插
func (l *UserLogic) Signup(params *models.ParamSignup) (*models.User, string, error) {
	birthdate, err := time.ParseInLocation("2006-01-02", params.Birthdate, time.Local)
	if err != nil {
		return nil, "", errors.Wrap(err, "logic:Signup: parse birthdate")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "logic:Signup: GenerateFromPassword")
	}

	usr := &models.User{
		UserID:    utils.GenSnowflakeID(),
		UserName:  params.Username,
		Email:     params.Email,
		Password:  string(hashed),
		Birthdate: birthdate,
		Nickname:  params.Nickname,
		Bio:       params.Bio,
	}

	if err := l.users.Insert(usr); err != nil {
		return nil, "", err
	}

	cookie, err := l.sessions.Create(usr.UserID, usr.UserName, usr.Nickname)
	if err != nil {
		return nil, "", errors.Wrap(err, "logic:Signup: create session")
	}
	return usr, cookie, nil
}

// Signin 登录成功建立会话；用户不存在和密码错误对外不区分
func (l *UserLogic) Signin(params *models.ParamSignin) (*models.User, string, error) {
	usr, err := l.users.SelectByEmail(params.Email)
	if err != nil {
		if errors.Is(err, beacon.ErrUserNotExist) {
			return nil, "", beacon.ErrWrongPassword
		}
		return nil, "", errors.Wrap(err, "logic:Signin: SelectByEmail")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(params.Password)); err != nil {
		return nil, "", beacon.ErrWrongPassword
	}

	cookie, err := l.sessions.Create(usr.UserID, usr.UserName, usr.Nickname)
	if err != nil {
		return nil, "", errors.Wrap(err, "logic:Signin: create session")
	}
	return usr, cookie, nil
}

// Signout 销毁服务端会话；cookie 已失效时也视为成功
func (l *UserLogic) Signout(cookieValue string) error {
	if err := l.sessions.Destroy(cookieValue); err != nil {
		if errors.Is(err, beacon.ErrNoSuchSession) {
			return nil
		}
		return errors.Wrap(err, "logic:Signout: destroy session")
	}
	return nil
}
