package workers

import (
	"sync"

	"github.com/urdekcah/beacon/dao/mysql"
)

var wg sync.WaitGroup
var quit = make(chan struct{})

// InitWorkers 启动所有后台任务
func InitWorkers(posts *mysql.PostRepo) {
	ReconcileVoteCounts(&wg, posts)
}

// Stop 通知所有后台任务退出
func Stop() {
	close(quit)
}

// Wait 等所有后台任务收尾
func Wait() {
	wg.Wait()
}
