package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/arpanp11/imaginify-saas/internal/config"
	"github.com/arpanp11/imaginify-saas/internal/database"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/spf13/cobra"
)

type UserImport struct {
	ClerkID  string `json:"clerk_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Credits  int    `json:"credits"`
}

var (
	importFile    string
	skipZero      bool
	skipInvalid   bool
	strictMode    bool
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import user credit balances from JSON file",
	Long: `Import users and their credit balances from a JSON file.

Expected JSON format:
[
  {"clerk_id": "user_abc123", "username": "alice", "email": "alice@example.com", "credits": 120},
  {"clerk_id": "user_def456", "username": "bob", "email": "bob@example.com", "credits": 20}
]

By default, the import will skip zero balance users and invalid usernames.
Use --strict to fail on any validation error instead.`,
	Example: `  imaginify import -f users.json
  imaginify import --file users.json --no-skip-zero
  imaginify import -f users.json --strict`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImport(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (required)")
	importCmd.Flags().BoolVar(&skipZero, "skip-zero", true, "Skip users with zero balance")
	importCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", true, "Skip invalid usernames")
	importCmd.Flags().BoolVar(&strictMode, "strict", false, "Fail on any validation error")
	importCmd.MarkFlagRequired("file")
}

func runImport() error {
	if importFile == "" {
		return fmt.Errorf("file path is required")
	}

	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var users []UserImport
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	creditService := services.NewCreditService(userRepo, db)

	log.Printf("Starting import of %d users from %s", len(users), importFile)

	imported := 0
	skipped := 0

	for _, u := range users {
		if err := validateAndImportUser(u, userService, creditService); err != nil {
			if strictMode {
				return fmt.Errorf("import failed for %s: %w", u.Username, err)
			}
			log.Printf("Skipped %s: %v", u.Username, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)

	return nil
}

func validateAndImportUser(u UserImport, userService *services.UserService, creditService *services.CreditService) error {
	if skipZero && u.Credits == 0 {
		return fmt.Errorf("zero balance")
	}

	if u.Credits < 0 {
		return fmt.Errorf("negative balance not allowed")
	}

	if u.ClerkID == "" {
		return fmt.Errorf("empty clerk id")
	}

	if u.Username == "" {
		return fmt.Errorf("empty username")
	}

	if skipInvalid && !usernameRegex.MatchString(u.Username) {
		return fmt.Errorf("invalid username format")
	}

	_, err := userService.CreateUser(services.CreateUserParams{
		ClerkID:  u.ClerkID,
		Username: u.Username,
		Email:    u.Email,
	})
	if err != nil && err != services.ErrUserAlreadyExists {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := creditService.SetBalance(u.Username, u.Credits); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}

	log.Printf("Imported %s with %d credits", u.Username, u.Credits)
	return nil
}
