package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/bigtop/showrunner/internal/config"
	"github.com/bigtop/showrunner/internal/database"
	"github.com/bigtop/showrunner/internal/handler"
	"github.com/bigtop/showrunner/internal/middleware"
	"github.com/bigtop/showrunner/internal/program"
	"github.com/bigtop/showrunner/internal/queue"
	"github.com/bigtop/showrunner/internal/repository"
	"github.com/bigtop/showrunner/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	showRepo := repository.NewShowRepo(db)
	actRepo := repository.NewActRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	h := handler.NewProgramHandler(showRepo, actRepo, expenseRepo, program.NewShowLocks())

	e := echo.New()
	e.Validator = handler.NewValidator()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterProgram(e, h)

	go queue.StartExpenseConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
