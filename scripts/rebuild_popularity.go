// 重建课程热度榜脚本
//
// 热度榜平时由选课操作增量维护。redis 数据丢失或批量导入
// 选课数据后，用此脚本从选课表全量重算一次。
//
// 用法: go run scripts/rebuild_popularity.go
package main

import (
	"log"

	"course_center_backend/internal/config"
	"course_center_backend/internal/model"
	"course_center_backend/internal/repository"
	"course_center_backend/pkg/database"
	"course_center_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("redis 连接失败: %v", err)
	}

	popularity := repository.NewPopularityRepository(rdb)

	type courseCount struct {
		CourseID uint
		Count    int64
	}
	var counts []courseCount
	if err := db.Model(&model.Enrollment{}).
		Select("course_id, COUNT(*) as count").
		Group("course_id").
		Scan(&counts).Error; err != nil {
		log.Fatalf("统计选课数失败: %v", err)
	}

	for _, c := range counts {
		if err := popularity.Remove(c.CourseID); err != nil {
			log.Fatalf("清理旧榜单失败: %v", err)
		}
		if err := popularity.Increment(c.CourseID, float64(c.Count)); err != nil {
			log.Fatalf("写入热度失败: %v", err)
		}
	}

	log.Printf("热度榜重建完成，共 %d 门课程", len(counts))
}
