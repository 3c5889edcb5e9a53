package mysql

import (
	"strings"

	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
)

type UserRepo struct {
	db *Database
}

func NewUserRepo(db *Database) *UserRepo {
	return &UserRepo{db: db}
}

// Insert 唯一键冲突会映射为字段级业务错误，调用方据此定位冲突字段
func (r *UserRepo) Insert(usr *models.User) error {
	res := r.db.db.Create(usr)
	if res.Error != nil {
		if isDuplicate(res.Error) {
			msg := res.Error.Error()
			if strings.Contains(msg, "email") {
				return beacon.ErrEmailExist
			}
			return beacon.ErrUserExist
		}
		return errors.Wrap(res.Error, "mysql:UserRepo.Insert")
	}
	return nil
}

func (r *UserRepo) SelectByUserID(userID int64) (*models.User, error) {
	usr := new(models.User)
	res := r.db.db.First(usr, "user_id = ?", userID)
	if err := orNotFound(res.Error, beacon.ErrUserNotExist, "mysql:UserRepo.SelectByUserID"); err != nil {
		return nil, err
	}
	return usr, nil
}

func (r *UserRepo) SelectByEmail(email string) (*models.User, error) {
	usr := new(models.User)
	res := r.db.db.First(usr, "email = ?", email)
	if err := orNotFound(res.Error, beacon.ErrUserNotExist, "mysql:UserRepo.SelectByEmail"); err != nil {
		return nil, err
	}
	return usr, nil
}

func (r *UserRepo) SelectByName(name string) (*models.User, error) {
	usr := new(models.User)
	res := r.db.db.First(usr, "user_name = ?", name)
	if err := orNotFound(res.Error, beacon.ErrUserNotExist, "mysql:UserRepo.SelectByName"); err != nil {
		return nil, err
	}
	return usr, nil
}
