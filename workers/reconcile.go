package workers

import (
	"sync"
	"time"

	"github.com/urdekcah/beacon/dao/mysql"
	"github.com/urdekcah/beacon/logger"

	"github.com/spf13/viper"
)

// ReconcileVoteCounts 周期性用 votes 表重算 posts.vote_count。
// 正常情况下 vote_count 由投票事务增量维护，这个任务只负责修正漂移
func ReconcileVoteCounts(wg *sync.WaitGroup, posts *mysql.PostRepo) {
	interval := time.Second * time.Duration(viper.GetInt64("service.vote.reconcile_interval"))

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
			}

			rows, err := posts.ReconcileVoteCounts()
			if err != nil {
				logger.ErrorWithStack(err)
				continue
			}
			logger.Debugf("workers: reconciled vote_count for %d posts", rows)
		}
	}()
}
