// Command createstaff creates a staff account for the admin API.
//
//	SIREPRE_STAFF_PASSWORD=... createstaff -username jperez -name "Juan Pérez" -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	identityapp "github.com/sereci/sirepre/internal/application/identity"
	"github.com/sereci/sirepre/internal/infrastructure/auth"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

const passwordEnv = "SIREPRE_STAFF_PASSWORD"

func main() {
	var username, fullName, role, password string
	flag.StringVar(&username, "username", "", "Login name (required)")
	flag.StringVar(&fullName, "name", "", "Full name shown on reviews")
	flag.StringVar(&role, "role", "reviewer", "admin or reviewer")
	flag.StringVar(&password, "password", "", "Password; prefer the "+passwordEnv+" variable")
	flag.Parse()

	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "createstaff: -username and a password are required")
		flag.Usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, log, "warn")
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// No tokens are issued here, so no blacklist is needed.
	svc := identityapp.NewAuthService(
		persistence.NewGormStaffUserRepository(db.DB),
		auth.NewJWTService(cfg.JWT),
		nil,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := svc.CreateStaffUser(ctx, identityapp.CreateStaffUserInput{
		Username: username,
		Password: password,
		FullName: fullName,
		Role:     role,
	})
	if err != nil {
		log.Fatal("Failed to create staff user", zap.Error(err))
	}
	log.Info("Staff user ready",
		zap.String("id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role),
	)
}
