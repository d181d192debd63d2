package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"inkpress/app/config"
	"inkpress/app/repositories"
	"inkpress/app/routes"
	"inkpress/app/services"

	"github.com/joho/godotenv"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch strings.ToLower(os.Args[1]) {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkpress version %s\n", cliVersion)
	case "serve":
		serve()
	case "hashpw":
		hashPassword(os.Args[2:])
	case "init":
		initDB()
	case "clean":
		cleanDB()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkpress <command> [options]

Commands:
  help                 Display this help message.
  version              Show version information.
  serve                Run the blog API server.
  hashpw <password>    Hash an admin password and print the env assignments.
  init                 Initialize a new empty database.
  clean                Remove the database.

Environment:
  LISTEN_ADDR, DB_PATH, ADMIN_USERNAME, ADMIN_PASSWORD_HASH,
  JWT_SECRET, TOKEN_TTL (Go duration, default 168h).
  A .env file in the working directory is loaded when present.
`
	fmt.Println(helpText)
}

// serve starts the blog API server.
func serve() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.AdminPasswordHash == "" {
		log.Println("WARNING: ADMIN_PASSWORD_HASH not set, login will fail until it is configured")
	}

	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	auth := services.NewAuthService(cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPasswordHash, cfg.TokenTTL)
	handler := routes.SetupRoutes(db, auth)

	log.Printf("Starting blog API server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// hashPassword hashes a plaintext admin password and prints the
// environment variable assignments to configure the server with.
func hashPassword(args []string) {
	if len(args) < 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "Usage: inkpress hashpw <your-password>")
		os.Exit(1)
	}

	hash, err := services.HashPassword(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
		os.Exit(1)
	}

	secret := make([]byte, 64)
	if _, err := rand.Read(secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Password Hash Generated ===")
	fmt.Printf("Hash: %s\n", hash)
	fmt.Println("\n=== Environment Variables to Set ===")
	fmt.Println("ADMIN_USERNAME=admin")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	fmt.Printf("JWT_SECRET=%s\n", hex.EncodeToString(secret))
}

// initDB initializes a new empty database.
func initDB() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if _, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db.Close()
	fmt.Println("Database initialized successfully")
}

// cleanDB removes the database after confirmation.
func cleanDB() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(cfg.DBPath); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")
}
