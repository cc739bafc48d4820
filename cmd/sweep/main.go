package main

import (
	"context"
	"time"

	"github.com/cantiere-digitale/giornale/internal/auth"
	"github.com/cantiere-digitale/giornale/internal/config"
	"github.com/cantiere-digitale/giornale/internal/database"
	"github.com/cantiere-digitale/giornale/internal/env"
	filestorage "github.com/cantiere-digitale/giornale/internal/file_storage"
	"github.com/cantiere-digitale/giornale/internal/repository"
	"github.com/cantiere-digitale/giornale/internal/sweeper"
	"github.com/cantiere-digitale/giornale/internal/util"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, s3)

	grace := time.Duration(env.GetInt("SWEEP_GRACE_HOURS", 24)) * time.Hour

	s := sweeper.NewSweeper(repo, s3, cfg.Minio.BUCKET, grace, logger)
	if err := s.Run(context.Background()); err != nil {
		logger.Panic(err)
	}
}
