package main

import (
	"context"
	"log"

	"github.com/gryphathie/KombuchaApp/internal/db"
	"github.com/gryphathie/KombuchaApp/internal/migrate"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[migrate] No .env file found, relying on system env vars")
	}

	ctx := context.Background()
	pool, err := db.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	log.Println("migrations applied")
}
