package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"bramble/internal/config"
	"bramble/internal/credential"
	"bramble/internal/database"
	"bramble/internal/models"
	"bramble/internal/page"
	"bramble/internal/session"
	"bramble/internal/store"
	"bramble/internal/user"
	"bramble/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		addr      = flag.String("addr", cfg.Addr, "The address to listen on.")
		dsn       = flag.String("dsn", cfg.DSN, "The database connection string.")
		redisAddr = flag.String("redis", cfg.RedisAddr, "The redis address for the page and user cache.")
	)
	flag.Parse()

	db, err := database.New(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("database migrated")

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis unreachable at %s: %v", *redisAddr, err)
	}

	signer, err := credential.NewSigner([]byte(cfg.SessionSecret))
	if err != nil {
		log.Fatal(err)
	}

	pages := store.NewCollection[models.Page]("pages", rdb, store.NewPageBackend(db))
	users := store.NewCollection[models.User]("users", rdb, store.NewUserBackend(db))

	srv := web.NewServer(
		page.NewService(pages),
		user.NewService(users, credential.NewHasher()),
		session.NewManager(signer),
		web.Templates(),
	)

	log.Printf("starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
