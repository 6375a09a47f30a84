package routes

import (
	"PetDiary/internal/api/handlers"
	"PetDiary/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	PetHandler     handlers.PetHandler
	FoodHandler    handlers.FoodHandler
	DietLogHandler handlers.DietLogHandler
	Middleware     middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Pets()
	c.Foods()
	c.DietLogs()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Pets() {
	pets := c.App.Group("/api/v1/pets")
	{
		pets.Post("", c.PetHandler.CreatePet)
		pets.Get("", c.PetHandler.GetPets)
		pets.Get("/:id", c.PetHandler.GetPet)
		pets.Patch("/:id", c.PetHandler.UpdatePet)
		pets.Delete("/:id", c.PetHandler.DeletePet)
		pets.Post("/:id/avatar", c.PetHandler.UploadPhoto)

		// menu
		pets.Get("/:id/menu", c.FoodHandler.GetPetMenu)
		pets.Put("/:id/menu", c.FoodHandler.SyncMenu)
	}
}

func (c *Config) Foods() {
	foods := c.App.Group("/api/v1/foods")
	foods.Post("", c.FoodHandler.AddFood)
	foods.Get("", c.FoodHandler.GetFoods)
}

func (c *Config) DietLogs() {
	diary := c.App.Group("/api/v1/pets/:id")

	diary.Post("/logs/intake", c.DietLogHandler.RecordIntake)
	diary.Post("/logs/leftover", c.DietLogHandler.RecordLeftover)
	diary.Get("/logs/last-meal", c.DietLogHandler.LastMeal)
	diary.Get("/logs", c.DietLogHandler.GetDailyLogs)
	diary.Get("/report", c.DietLogHandler.DailyReport)

	diary.Get("/export", c.DietLogHandler.ExportCSV)
	diary.Post("/export/mail", c.DietLogHandler.MailExport)
}
