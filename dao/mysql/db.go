package mysql

import (
	"fmt"
	"strings"

	"github.com/urdekcah/beacon/models"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database 持有连接池，显式构造、显式注入、显式关闭
type Database struct {
	db *gorm.DB
}

// NewDatabase 按配置连接 MySQL 并建表
func NewDatabase() (*Database, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		viper.GetString("mysql.username"),
		viper.GetString("mysql.password"),
		viper.GetString("mysql.host"),
		viper.GetInt("mysql.port"),
		viper.GetString("mysql.database"),
		viper.GetString("mysql.charset"))

	cfg := &gorm.Config{}
	if viper.GetBool("mysql.debug") {
		cfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	return Open(mysql.Open(dsn), cfg)
}

// Open 用任意 dialector 打开数据库，测试用 sqlite 走这里
func Open(dialector gorm.Dialector, cfg *gorm.Config) (*Database, error) {
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "mysql:Open: gorm.Open")
	}
	d := &Database{db: db}
	if err := d.initTables(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) initTables() error {
	err := d.db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityMembership{},
		&models.Post{},
		&models.Vote{},
	)
	return errors.Wrap(err, "mysql:initTables: AutoMigrate")
}

// Transaction 在一个池内连接上执行 fn：正常返回提交，出错回滚，
// 连接在所有路径上都会归还给连接池
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.db.Transaction(fn)
}

func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "mysql:Close: get sql.DB")
	}
	return errors.Wrap(sqlDB.Close(), "mysql:Close")
}

// isDuplicate 判断是否是唯一键冲突（MySQL 1062，sqlite 用于测试）
func isDuplicate(err error) bool {
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// orNotFound 把 gorm 的未找到错误换成业务哨兵错误，其余错误照常包装
func orNotFound(err error, sentinel error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return errors.Wrap(err, msg)
}
