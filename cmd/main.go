package main

import (
	"PetDiary/cmd/config"
	migration "PetDiary/cmd/database/migrate"
	"PetDiary/internal/logger"
	"PetDiary/internal/utils"
	"fmt"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()

	if err := logger.Init(utils.GetConfig("LOG_LEVEL")); err != nil {
		panic(err)
	}
	log := logger.L()
	defer log.Sync()

	db, err := config.ConnectDB(log)
	if err != nil {
		log.Fatal("cannot start without database", zap.Error(err))
	}

	if err := migration.Migrate(db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	app, err := config.NewApp(db, log)
	if err != nil {
		log.Fatal("cannot build app", zap.Error(err))
	}

	addr := fmt.Sprintf(":%s", utils.GetConfig("APP_PORT"))
	log.Info("server starting", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
