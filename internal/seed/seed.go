package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dstcrm/dstcrm/internal/app/models"
	appRepos "github.com/dstcrm/dstcrm/internal/app/repositories"
	"github.com/dstcrm/dstcrm/internal/config"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/auth"
)

// CreateDefaultData creates the administrator account configured in the
// admin section, if one is configured and does not exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("No admin account configured, skipping seed")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	if _, err := userRepo.GetUserByEmail(ctx, cfg.Admin.Email); err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for admin user")
		return err
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:       cfg.Admin.Email,
		Password:    hashedPassword,
		DisplayName: "Administrator",
		RoleType:    appModels.RoleAdmin,
	}

	adminID, err := userRepo.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created")
	return nil
}
