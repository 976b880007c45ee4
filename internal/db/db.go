package db

import (
	"log"
	"os"
	"wenda/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=wenda port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	// TranslateError: 把驱动层唯一约束冲突翻译成 gorm.ErrDuplicatedKey，
	// 重复投票/标签重名的判断依赖它
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// 一次性初始化：内置权限组、默认管理员、默认标签
	if err := Bootstrap(DB); err != nil {
		log.Fatalf("Failed to bootstrap database: %v", err)
	}
}

// Migrate 自动建表，测试共用同一份表清单
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Group{},
		&models.Permission{},
		&models.InitialSetup{},
		&models.Question{},
		&models.Answer{},
		&models.Comment{},
		&models.Vote{},
		&models.Tag{},
		&models.Badge{},
		&models.Notification{},
	)
}
