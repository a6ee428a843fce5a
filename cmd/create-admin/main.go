package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/logger"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
	"github.com/stemsi/sekolah-backend/internal/service"
)

// minPasswordLength mirrors the create-user request validation.
const minPasswordLength = 8

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Repository ─────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Account ===")

	name := prompt(reader, "Enter Name: ")
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	email := strings.ToLower(prompt(reader, "Enter Email: "))
	if email == "" || !strings.Contains(email, "@") {
		fmt.Println("Error: a valid email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < minPasswordLength {
		fmt.Printf("Error: Password must be at least %d characters\n", minPasswordLength)
		return
	}

	fmt.Println("Roles:")
	for _, r := range model.AssignableRoles() {
		fmt.Printf("  - %s\n", r)
	}
	raw := strings.ToUpper(prompt(reader, "Enter Role (default SUPER_ADMIN): "))
	if raw == "" {
		raw = string(model.RoleSuperAdmin)
	}
	role := model.Role(raw)
	if !role.IsAssignable() {
		fmt.Printf("Error: %q is not an assignable role\n", raw)
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	// The auth service is only used for hashing; it needs no Redis here.
	auth := service.NewAuthService(cfg, nil, userRepo, nil, log)
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			fmt.Printf("Error: an account with email %s already exists\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	fmt.Printf("\nSuccess! %s '%s' (%s) created with ID: %d\n", user.Role, user.Name, user.Email, user.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
