package database

import (
	"Moodgraph/config"
	"Moodgraph/models"
	"Moodgraph/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(&models.Board{}, &models.Note{}); err != nil {
		log.L.Fatal("failed to migrate database", zap.Error(err))
	}

	bootstrap(db)

	log.L.Info("connect database success")
	return db
}

// 首次启动时保证至少有一个看板
func bootstrap(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Board{}).Count(&count).Error; err != nil {
		log.L.Error("failed to count boards", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	board := &models.Board{Name: "My Vision Board", Category: "personal"}
	if err := db.Create(board).Error; err != nil {
		log.L.Error("failed to create default board", zap.Error(err))
		return
	}
	log.L.Info("created default board", zap.Int64("board_id", board.ID))
}
