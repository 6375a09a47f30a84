package config

import (
	"PetDiary/internal/api/handlers"
	"PetDiary/internal/api/routes"
	"PetDiary/internal/middleware"
	"PetDiary/internal/utils"
	"PetDiary/internal/utils/mailing"
	"PetDiary/internal/utils/storage"
	"PetDiary/pkg/dietlog"
	"PetDiary/pkg/food"
	"PetDiary/pkg/pet"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	location := utils.Location()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		log.Error("error creating logs directory", zap.Error(err))
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Error("error opening access log", zap.Error(err))
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   location.String(),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	petRepository := pet.NewPetRepository(db)
	foodRepository := food.NewFoodRepository(db)
	dietLogRepository := dietlog.NewDietLogRepository(db)

	// Service
	petService := pet.NewPetService(petRepository, s3, log.Named("pet"))
	foodService := food.NewFoodService(foodRepository, petRepository, log.Named("food"))
	dietLogService := dietlog.NewDietLogService(
		dietLogRepository,
		foodRepository,
		petRepository,
		mailer,
		location,
		log.Named("ledger"),
	)

	// Handler
	petHandler := handlers.NewPetHandler(petService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	dietLogHandler := handlers.NewDietLogHandler(dietLogService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		PetHandler:     petHandler,
		FoodHandler:    foodHandler,
		DietLogHandler: dietLogHandler,
		Middleware:     middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
