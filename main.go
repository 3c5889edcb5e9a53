package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/urdekcah/beacon/controller"
	"github.com/urdekcah/beacon/dao/mysql"
	"github.com/urdekcah/beacon/dao/redis"
	"github.com/urdekcah/beacon/internal/utils"
	"github.com/urdekcah/beacon/logger"
	"github.com/urdekcah/beacon/logic"
	"github.com/urdekcah/beacon/router"
	"github.com/urdekcah/beacon/settings"
	"github.com/urdekcah/beacon/workers"

	"github.com/spf13/viper"
)

func main() {
	path := flag.String("c", "", "config file path, empty means defaults only")
	flag.Parse()

	settings.InitSettings(*path)
	logger.InitLogger()
	utils.InitSnowflake()
	utils.InitTrans()

	// 显式构造、显式注入，进程退出时逆序关闭
	db, err := mysql.NewDatabase()
	if err != nil {
		logger.Errorf("init mysql: %v", err)
		os.Exit(1)
	}
	logger.Infof("Initializing MySQL successfully")

	rdb, err := redis.NewClient()
	if err != nil {
		logger.Errorf("init redis: %v", err)
		os.Exit(1)
	}
	logger.Infof("Initializing Redis successfully")

	sessions := redis.NewSessionStore(rdb)

	userRepo := mysql.NewUserRepo(db)
	communityRepo := mysql.NewCommunityRepo(db)
	postRepo := mysql.NewPostRepo(db)
	voteRepo := mysql.NewVoteRepo(db)

	userLogic := logic.NewUserLogic(userRepo, sessions)
	communityLogic := logic.NewCommunityLogic(db, communityRepo, postRepo)
	postLogic := logic.NewPostLogic(db, postRepo, communityRepo, voteRepo)

	engine := router.New(router.Deps{
		Sessions:  sessions,
		Auth:      controller.NewAuthController(userLogic),
		Community: controller.NewCommunityController(communityLogic),
		Post:      controller.NewPostController(postLogic, communityLogic),
		Feed:      controller.NewFeedController(postLogic),
	})
	logger.Infof("Initializing router successfully")

	workers.InitWorkers(postRepo)

	srv := router.NewServer(engine)

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		// 等在途请求收尾，超时强制退出
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Second*time.Duration(viper.GetInt64("server.shutdown_waitting_time")))
		defer cancel()
		logger.Infof("Shutting down HTTP Server(wait for all connections to be closed)...")

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("server shutdown: %v", err)
		}
		logger.Infof("Http server closed successfully")
		close(idleConnsClosed)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Errorf("HTTP server ListenAndServe: %v", err)
	}

	<-idleConnsClosed
	logger.Infof("Waitting for all background tasks to complete...")
	workers.Stop()
	workers.Wait()

	if err := rdb.Close(); err != nil {
		logger.Errorf("close redis: %v", err)
	}
	if err := db.Close(); err != nil {
		logger.Errorf("close mysql: %v", err)
	}
	logger.Infof("Done.\n\nBeacon server closed successfully")
}
