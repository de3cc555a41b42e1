package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/repostflow/configs"
	"github.com/maheshrc27/repostflow/internal/api/handlers"
	"github.com/maheshrc27/repostflow/internal/api/middleware"
	job "github.com/maheshrc27/repostflow/internal/jobs"
	"github.com/maheshrc27/repostflow/internal/queue"
	"github.com/maheshrc27/repostflow/internal/repository"
	"github.com/maheshrc27/repostflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	credentialsRepo := repository.NewCredentialsRepository(db)
	generalConfigRepo := repository.NewGeneralConfigRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)

	graphClient := service.NewGraphClient(*cfg)
	privateAPIClient := service.NewPrivateAPIClient(*cfg)
	hostingService := service.NewHostingService(*cfg)
	mediaService := service.NewMediaService(hostingService, cfg.StorageDir)
	sessionService := service.NewSessionService(*cfg, privateAPIClient, credentialsRepo)
	fetchService := service.NewFetchService(graphClient, credentialsRepo, postRepo)
	publishService := service.NewPublishService(postRepo, generalConfigRepo, credentialsRepo, sessionService, mediaService, privateAPIClient)
	generalService := service.NewGeneralService(*cfg, credentialsRepo, generalConfigRepo, hashtagRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg)
	app.Post("/login", auth.Login)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	general := handlers.NewGeneralHandler(generalService)
	api.Get("/general/credentials", general.GetCredentials)
	api.Post("/general/set_credentials", general.SetCredentials)
	api.Post("/general/set_account", general.SetAccount)
	api.Get("/general/general_config", general.GetGeneralConfig)
	api.Post("/general/set_general_config", general.SetGeneralConfig)
	api.Get("/general/hashtags", general.ListHashtags)
	api.Post("/general/hashtags", general.AddHashtag)
	api.Delete("/general/hashtags", general.RemoveHashtag)

	posts := handlers.NewPostsHandler(publishService, fetchService, postRepo, client)
	api.Get("/posts/non_deleted_fetched_posts", posts.NonDeletedFetchedPosts)
	api.Get("/posts/all_fetched_posts", posts.AllFetchedPosts)
	api.Delete("/posts/delete_post", posts.DeletePost)
	api.Post("/posts/queue_post", posts.QueuePost)
	api.Post("/posts/process_queue", posts.ProcessQueue)
	api.Post("/posts/fetch", posts.Fetch)

	// cron jobs
	hashtagFetchJob := job.NewHashtagFetchJob(hashtagRepo, generalConfigRepo, fetchService)

	//queue
	queueW := queue.NewQueue(publishService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", hashtagFetchJob.FetchHashtags)
	c.Start()

	go func() {
		// Concurrency 1: publish attempts are strictly serialized.
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 1,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeProcessQueue, queueW.HandleProcessQueueTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
