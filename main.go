// @title 课程中心后端 API
// @version 1.0
// @description 课程中心的后端服务器，提供选课、课时发布与判分能力。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"course_center_backend/internal/app"
	"course_center_backend/internal/config"
	"course_center_backend/pkg/database"
	"course_center_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 迁移完成后直接退出，不启动 HTTP 服务
	if *migrateOnly {
		if _, err := database.InitDB(&cfg.Database); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
