package migration

import (
	"PetDiary/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *zap.Logger) error {
	// uuid_generate_v4() defaults
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model interface{}
	}{
		{"pet", &entities.Pet{}},
		{"food library", &entities.FoodItem{}},
		{"pet food relation", &entities.PetFoodRelation{}},
		{"diet log", &entities.DietLog{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Error("error migrating table", zap.String("table", m.name), zap.Error(err))
			return err
		}
	}

	log.Info("database migration complete")
	return nil
}
