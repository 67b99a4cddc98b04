package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"moodjournal/internal/app/di"
	"moodjournal/internal/app/router"
	authadapters "moodjournal/internal/feature/auth/adapters"
	authhandler "moodjournal/internal/feature/auth/transport/handler"
	authusecase "moodjournal/internal/feature/auth/usecase"
	entryhandler "moodjournal/internal/feature/entries/transport/handler"
	entriesusecase "moodjournal/internal/feature/entries/usecase"
	transferhandler "moodjournal/internal/feature/transfer/transport/handler"
	transferusecase "moodjournal/internal/feature/transfer/usecase"
	platformdb "moodjournal/internal/platform/db"
	jwtmw "moodjournal/internal/platform/jwt"
	platformredis "moodjournal/internal/platform/redis"
	"moodjournal/internal/shared/ratelimiter"
)

func main() {
	// .env is optional; the process environment wins when both are set.
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using process environment.")
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	entryRepo := di.NewEntryRepository(rdb, db, 5*time.Minute)

	// Usecase
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	entriesUC := entriesusecase.NewEntriesUsecase(entryRepo)
	exporter := transferusecase.NewExporter(entryRepo)
	importer := transferusecase.NewImporter(entryRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	entryH := entryhandler.NewEntryHandler(entriesUC)
	transferH := transferhandler.NewTransferHandler(exporter, importer)

	// 10 imports per minute per client is generous for interactive use.
	importLimit := ratelimiter.NewRateLimiter(10, time.Minute).Middleware()

	r := router.NewRouter(authH, entryH, transferH, importLimit)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
