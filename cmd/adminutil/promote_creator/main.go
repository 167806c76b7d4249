package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/sudo-init-do/crafthub/internal/config"
	"github.com/sudo-init-do/crafthub/internal/db"
	"github.com/sudo-init-do/crafthub/internal/logging"
)

// promote_creator sets a user's role by email so they get the creator
// listing limit (or full admin rights with -role admin).
// Usage:
//
//	go run ./cmd/adminutil/promote_creator -email user@example.com [-role creator|admin|fan]
func main() {
	email := flag.String("email", "", "Email of the user to promote")
	role := flag.String("role", "creator", "Role to assign: fan, creator or admin")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: promote_creator -email user@example.com [-role creator]")
	}
	switch *role {
	case "fan", "creator", "admin":
	default:
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool, logger); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}

	ct, err := pool.Exec(ctx, `UPDATE users SET role = $1 WHERE email = $2`, *role, strings.ToLower(*email))
	if err != nil {
		logger.Fatal("failed to update role", zap.Error(err))
	}
	if ct.RowsAffected() == 0 {
		logger.Fatal("no user found", zap.String("email", *email))
	}

	fmt.Printf("User %s is now %s.\n", *email, *role)
}
