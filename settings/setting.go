package settings

import "github.com/spf13/viper"

func InitSettings(confPath string) {
	viper.SetDefault("server.ip", "")
	viper.SetDefault("server.port", 8993)
	viper.SetDefault("server.lang", "en")
	viper.SetDefault("server.start_time", "2025-01-01") // snowflake 纪元
	viper.SetDefault("server.machine_id", 1)
	viper.SetDefault("server.develop_mode", false)
	viper.SetDefault("server.templates", "templates/*")
	viper.SetDefault("server.shutdown_waitting_time", 30) // 收到 SIGINT 信号后，超过 30s，服务器将强制退出

	viper.SetDefault("mysql.host", "127.0.0.1")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.username", "root")
	viper.SetDefault("mysql.password", "123456")
	viper.SetDefault("mysql.database", "beacon")
	viper.SetDefault("mysql.charset", "utf8mb4")

	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.poolsize", 10)
	viper.SetDefault("redis.max_oper_time", 3)

	viper.SetDefault("logger.level", 0)
	viper.SetDefault("logger.path", "./logs/beacon.log")
	viper.SetDefault("logger.max_size", 16)
	viper.SetDefault("logger.max_backups", 5)
	viper.SetDefault("logger.compress", false)
	viper.SetDefault("logger.console", true)

	viper.SetDefault("service.session.cookie_name", "beacon_sid")
	viper.SetDefault("service.session.expire_duration", 86400) // 秒
	viper.SetDefault("service.session.sign_key", "please-change-me")
	viper.SetDefault("service.session.secure", false)

	viper.SetDefault("service.csrf.cookie_name", "beacon_csrf")
	viper.SetDefault("service.csrf.header_name", "X-CSRF-Token")
	viper.SetDefault("service.csrf.sign_key", "please-change-me-too")

	viper.SetDefault("service.community.max_tags", 5)
	viper.SetDefault("service.community.allowed_colors", []string{
		"#ff4500", "#0079d3", "#46d160", "#ffb000", "#7193ff", "#ff66ac",
	})
	viper.SetDefault("service.community.allowed_icons", []string{
		"rocket", "book", "paw", "gamepad", "music", "camera", "leaf", "flask",
	})

	viper.SetDefault("service.post.content_max_length", 256) // 列表页截断长度
	viper.SetDefault("service.vote.reconcile_interval", 600) // vote_count 对账周期，秒

	viper.SetDefault("service.ratelimit.rate", 0.6)
	viper.SetDefault("service.ratelimit.capacity", 5000)

	if confPath == "" {
		return // 全部使用默认值
	}
	viper.SetConfigFile(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(err.Error())
	}
}
