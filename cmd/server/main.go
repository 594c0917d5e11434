package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/di"
	"auth_backend/internal/app/router"
	authadapters "auth_backend/internal/feature/auth/adapters"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/config"
	infradb "auth_backend/internal/platform/db"
	jwtmw "auth_backend/internal/platform/jwt"
	"auth_backend/internal/platform/mail"
	infraredis "auth_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Reset tokens will be stored in MySQL.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	tokenRepo := di.NewResetTokenRepository(rdb, db)

	// Platform
	issuer := jwtmw.NewIssuer(cfg.JWTSecret, cfg.TokenLifetime)
	notifier := mail.NewLogNotifier()

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokenRepo, issuer, notifier, authusecase.Config{
		FrontendURL:        cfg.FrontendURL,
		MailFrom:           cfg.MailFrom,
		ResetTokenLifetime: cfg.ResetTokenLifetime,
	})

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cfg.TokenLifetime)

	// ルータ生成
	r := router.NewRouter(authH, issuer)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
