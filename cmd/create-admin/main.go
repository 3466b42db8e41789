package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"houseman.backend/internal/config"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	domainrepo "houseman.backend/internal/domain/repositories"
	"houseman.backend/internal/infrastructure/datasources/postgres"
	"houseman.backend/internal/infrastructure/repositories"
	"houseman.backend/pkg/crypto"
	"houseman.backend/pkg/utils"
)

// PasswordEnv is read when --password is not given
const PasswordEnv = "ADMIN_PASSWORD"

var openCreateAdminDB = postgres.NewConnection

var openCreateAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type createAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error)
	hash    func(password string) (string, error)
	getenv  func(key string) string
	now     func() time.Time
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultCreateAdminDeps() createAdminDeps {
	return createAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (domainrepo.UserRepository, io.Closer, error) {
			db, err := openCreateAdminDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openCreateAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return repositories.NewUserRepository(db), sqlDB, nil
		},
		hash:   crypto.HashPassword,
		getenv: os.Getenv,
		now:    func() time.Time { return time.Now().UTC() },
		out:    os.Stdout,
	}
}

type adminInput struct {
	email     string
	password  string
	firstName string
	lastName  string
	phone     string
}

func (in adminInput) validate() error {
	if in.email == "" || !strings.Contains(in.email, "@") {
		return fmt.Errorf("--email is required and must be an address")
	}
	if len(in.password) < crypto.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters (--password or %s)", crypto.MinPasswordLength, PasswordEnv)
	}
	if in.firstName == "" || in.lastName == "" {
		return fmt.Errorf("--first-name and --last-name are required")
	}
	return nil
}

func runCreateAdmin(args []string, deps createAdminDeps) error {
	def := defaultCreateAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.now == nil {
		deps.now = def.now
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	passwordFlag := fs.String("password", "", "admin password, defaults to $"+PasswordEnv)
	firstNameFlag := fs.String("first-name", "", "first name (required)")
	lastNameFlag := fs.String("last-name", "", "last name (required)")
	phoneFlag := fs.String("phone", "", "phone number (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	in := adminInput{
		email:     strings.ToLower(strings.TrimSpace(*emailFlag)),
		password:  *passwordFlag,
		firstName: strings.TrimSpace(*firstNameFlag),
		lastName:  strings.TrimSpace(*lastNameFlag),
		phone:     strings.TrimSpace(*phoneFlag),
	}
	if in.password == "" {
		in.password = deps.getenv(PasswordEnv)
	}
	if err := in.validate(); err != nil {
		return err
	}

	cfg := deps.loadCfg()
	userRepo, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	existing, err := userRepo.GetByEmail(ctx, in.email)
	switch {
	case err == nil:
		return fmt.Errorf("user %s already exists (role=%s)", existing.Email, existing.Role)
	case !errors.Is(err, domainerrors.ErrNotFound):
		return fmt.Errorf("failed to look up %s: %w", in.email, err)
	}

	hash, err := deps.hash(in.password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := deps.now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        in.email,
		PasswordHash: hash,
		FirstName:    in.firstName,
		LastName:     in.lastName,
		Role:         entities.UserRoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.phone != "" {
		user.Phone = null.StringFrom(in.phone)
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created ADMIN user")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	return nil
}

func main() {
	if err := runCreateAdmin(os.Args[1:], defaultCreateAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
