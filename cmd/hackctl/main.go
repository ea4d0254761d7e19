// Command hackctl runs maintenance tasks against the hackathon database.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/hackathon-api/cmd/app"
	"github.com/vietanh2810/hackathon-api/internal/config"
	"github.com/vietanh2810/hackathon-api/internal/domain"
	"github.com/vietanh2810/hackathon-api/internal/logger"
	"github.com/vietanh2810/hackathon-api/internal/repository"
	"github.com/vietanh2810/hackathon-api/internal/repository/dao"
	"github.com/vietanh2810/hackathon-api/internal/seed"
	"github.com/vietanh2810/hackathon-api/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "hackctl",
		Short:         "Hackathon API maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "config file path")

	cmd.AddCommand(migrateCmd(&configPath), seedCmd(&configPath), promoteCmd(&configPath))

	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(*configPath)
			if err != nil {
				return err
			}

			if reset {
				if err = dao.DropAllTables(db); err != nil {
					return fmt.Errorf("dao.DropAllTables -> %w", err)
				}
				zap.L().Warn("all tables dropped")
			}

			if err = dao.InitTables(db); err != nil {
				return fmt.Errorf("dao.InitTables -> %w", err)
			}
			zap.L().Info("schema is up to date")

			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table before migrating")

	return cmd
}

func seedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, ideas, teams and suggestions from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := seed.LoadFile(file)
			if err != nil {
				return fmt.Errorf("seed.LoadFile -> %w", err)
			}

			conf, db, err := load(*configPath)
			if err != nil {
				return err
			}

			users := repository.NewUserRepository(dao.NewUserDAO(db))
			ideas := repository.NewIdeaRepository(dao.NewIdeaDAO(db))
			votes := repository.NewVoteRepository(dao.NewVoteDAO(db))
			teams := repository.NewTeamRepository(dao.NewTeamDAO(db))
			suggestions := repository.NewSuggestionRepository(dao.NewSuggestionDAO(db))

			seeder := seed.NewSeeder(
				service.NewAuthService(users, nil),
				users,
				service.NewIdeaService(ideas, votes, conf.Rules, nil, nil),
				service.NewTeamService(teams, ideas, votes, conf.Rules, nil, nil),
				service.NewSuggestionService(suggestions, votes, nil, nil),
			)

			sum, err := seeder.Apply(cmd.Context(), fixtures)
			if err != nil {
				return fmt.Errorf("seeder.Apply -> %w", err)
			}

			zap.L().Info("seed complete",
				zap.Int("users", sum.Users),
				zap.Int("ideas", sum.Ideas),
				zap.Int("teams", sum.Teams),
				zap.Int("suggestions", sum.Suggestions),
			)

			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yml", "fixtures file")

	return cmd
}

func promoteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(*configPath)
			if err != nil {
				return err
			}

			return promote(cmd.Context(), repository.NewUserRepository(dao.NewUserDAO(db)), args[0])
		},
	}
}

type roleSetter interface {
	FindProfileByEmail(ctx context.Context, email string) (domain.HackathonUser, error)
	SetRole(ctx context.Context, userID uint, role domain.Role) error
}

func promote(ctx context.Context, users roleSetter, email string) error {
	profile, err := users.FindProfileByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("users.FindProfileByEmail -> %w", err)
	}

	if profile.IsAdmin() {
		zap.L().Info("user is already an admin", zap.String("email", email))
		return nil
	}

	if err = users.SetRole(ctx, profile.UserID, domain.RoleAdmin); err != nil {
		return fmt.Errorf("users.SetRole -> %w", err)
	}
	zap.L().Info("user promoted to admin", zap.String("email", email))

	return nil
}

func load(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	db, err := app.OpenDatabase(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, db, nil
}

func openDB(configPath string) (*gorm.DB, error) {
	_, db, err := load(configPath)
	return db, err
}
