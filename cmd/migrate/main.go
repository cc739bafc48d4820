package main

import (
	"github.com/cantiere-digitale/giornale/internal/config"
	"github.com/cantiere-digitale/giornale/internal/database"
	"github.com/cantiere-digitale/giornale/internal/env"
	"github.com/cantiere-digitale/giornale/internal/model"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv()
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`)

	migrateErr := db.AutoMigrate(&model.User{}, &model.Token{}, &model.OAuthProvider{}, &model.Project{}, &model.DailyLog{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}
}
