package app

import (
	"fmt"

	"yamdb_backend/internal/auth"
	"yamdb_backend/internal/config"
	"yamdb_backend/internal/email"
	"yamdb_backend/internal/handlers"
	"yamdb_backend/internal/logger"
	"yamdb_backend/internal/models"
	"yamdb_backend/internal/repositories"
	"yamdb_backend/internal/routes"
	"yamdb_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Run boots the whole service: config, logging, database, schema, seed
// admin, router. Blocks serving HTTP until the process is stopped.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := OpenDatabase(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := SeedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("admin seeding failed: %w", err)
	}

	router := SetupRouter(db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// OpenDatabase connects to Postgres. TranslateError turns driver-specific
// failures into gorm's portable errors, which the repositories rely on to
// detect uniqueness violations.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		return err
	}

	// One review per author per title. AuthorID lives in an embedded
	// struct shared with comments, so the index is created by hand.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_review_author_title ON reviews (author_id, title_id)`,
	).Error
}

// SeedFirstAdmin provisions the configured bootstrap admin account so a
// fresh deployment has someone able to manage users and the catalog.
func SeedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminUsername == "" {
		return nil
	}

	admin := models.User{Username: cfg.FirstAdminUsername}
	err := db.Where(&models.User{Username: cfg.FirstAdminUsername}).
		Assign(models.User{
			Email:   cfg.FirstAdminEmail,
			Role:    models.UserRoleAdmin,
			IsStaff: true,
		}).
		FirstOrCreate(&admin).Error
	if err != nil {
		return err
	}

	logger.Info("bootstrap admin ensured", "username", admin.Username)
	return nil
}

// SetupRouter assembles services, handlers and routes into a gin engine.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	codes := auth.CodeConfig{
		Alphabet: cfg.Confirmation.Alphabet,
		Length:   cfg.Confirmation.Length,
		Sentinel: cfg.Confirmation.Sentinel,
	}
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	svc := services.NewServiceContainer(buildMailer(cfg), codes, tokens)
	appHandlers := handlers.NewAppHandlers(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, db, appHandlers, tokens, repositories.NewUserRepository())
	return router
}

// buildMailer returns the SMTP provider when a relay is configured, and
// the log-only provider otherwise.
func buildMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" || cfg.Email.SMTPUsername == "" {
		logger.Warn("no SMTP relay configured, emails will be logged only")
		return &email.LogProvider{}
	}

	provider, err := email.NewSMTPProvider(email.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
	})
	if err != nil {
		logger.Warn("SMTP provider unavailable, falling back to log-only mail", "error", err)
		return &email.LogProvider{}
	}
	return provider
}
