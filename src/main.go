package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Backend-Student-Tracker/docs"
	"Backend-Student-Tracker/src/config"
	"Backend-Student-Tracker/src/controllers"
	"Backend-Student-Tracker/src/database"
	"Backend-Student-Tracker/src/jobs"
	applogger "Backend-Student-Tracker/src/logger"
	"Backend-Student-Tracker/src/middleware"
	"Backend-Student-Tracker/src/routes"
	"Backend-Student-Tracker/src/seeder"
	"Backend-Student-Tracker/src/services/attendance"
	"Backend-Student-Tracker/src/services/badges"
	"Backend-Student-Tracker/src/services/students"
	"Backend-Student-Tracker/src/services/uploads"
	"Backend-Student-Tracker/src/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// @title        Student Tracker API
// @version      1.0
// @description  Students, attendance, ratings and badges.
// @BasePath     /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := applogger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// เชื่อมต่อกับ MongoDB
	mongoDB, err := database.ConnectMongoDB(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("❌ Error connecting to the database", zap.Error(err))
	}
	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		logger.Warn("⚠️ Could not create indexes", zap.Error(err))
	}

	studentRepo := database.NewStudentRepository(mongoDB.GetCollection(database.StudentCollectionName))
	badgeRepo := database.NewBadgeRepository(mongoDB.GetCollection(database.BadgeCollectionName))
	files := uploads.NewService(cfg.Upload, cfg.App.BaseURL, logger)

	var (
		locker     attendance.Locker = attendance.NewKeyedMutex()
		statsCache attendance.StatsCache
		queue      *asynq.Client
		worker     *asynq.Server
	)

	// Redis เป็น optional: cache, distributed lock และ background jobs
	redisClient, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("⚠️ Redis unavailable, running without cache and queue", zap.Error(err))
	}
	if redisClient != nil {
		logger.Info("✅ Redis connected", zap.String("addr", cfg.Redis.Addr))
		locker = utils.NewRedisLocker(redisClient, utils.DefaultLockTTL)
		statsCache = utils.NewRedisStatsCache(redisClient, utils.DefaultStatsTTL)
		queue = database.NewAsynqClient(cfg.Redis)

		var mux *asynq.ServeMux
		worker, mux = jobs.NewWorker(database.AsynqRedisOpt(cfg.Redis), files, logger)
		if err := worker.Start(mux); err != nil {
			logger.Error("❌ asynq worker failed to start", zap.Error(err))
			worker = nil
		}
	}
	cleaner := jobs.NewCleaner(queue, files, logger)

	attendanceOpts := []attendance.Option{attendance.WithLocker(locker)}
	studentOpts := []students.Option{students.WithLocker(locker)}
	if statsCache != nil {
		attendanceOpts = append(attendanceOpts, attendance.WithStatsCache(statsCache))
		studentOpts = append(studentOpts, students.WithStatsCache(statsCache))
	}

	studentService := students.NewService(studentRepo, badgeRepo, files, cleaner, logger, studentOpts...)
	attendanceService := attendance.NewService(studentRepo, logger, attendanceOpts...)
	badgeService := badges.NewService(badgeRepo, files, cleaner, logger)

	if cfg.App.SeedSampleData {
		if err := seeder.SeedSampleData(ctx, studentService, attendanceService, logger); err != nil {
			logger.Error("❌ seeding sample data failed", zap.Error(err))
		}
	}

	handlers := routes.Handlers{
		Students:   controllers.NewStudentController(studentService),
		Attendance: controllers.NewAttendanceController(attendanceService),
		Badges:     controllers.NewBadgeController(badgeService),
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   cfg.App.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.RespondError(c, "Request failed", err)
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))
	if cfg.App.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.App.RateLimitMax,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.HandleError(c, fiber.StatusTooManyRequests, "Too many requests, please try again later.", nil)
			},
		}))
	}

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, handlers, files.Dir())

	go func() {
		logger.Info("🚀 Server is running", zap.String("port", cfg.App.Port))
		if err := app.Listen(fmt.Sprintf(":%s", cfg.App.Port)); err != nil {
			logger.Error("❌ server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := mongoDB.Disconnect(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mongo disconnect", zap.Error(err))
	}
}
