// Command catalogctl maintains the storefront catalog and admin account.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/controllers"
	"storefront/models"
	"storefront/repository"
	"storefront/utils"
)

type env struct {
	products repository.ProductRepository
	users    repository.UserRepository
	close    func()
}

// openEnv connects to the configured store. Memory storage is refused since
// whatever the tool wrote would vanish on exit.
func openEnv(ctx context.Context, cfg utils.Config) (*env, error) {
	if cfg.Storage == "memory" {
		return nil, errors.New("catalogctl needs STORAGE=mongo")
	}
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.DBName)
	return &env{
		products: repository.NewProductStore(db),
		users:    repository.NewUserStore(db),
		close:    func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func printSummary(cmd *cobra.Command, title string, sum catalog.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Total products: %d\n", sum.Total)
	fmt.Fprintf(out, "Succeeded: %d\n", sum.Succeeded)
	if sum.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %d\n", sum.Skipped)
	}
	if sum.Failed > 0 {
		fmt.Fprintf(out, "Failed: %d\n", sum.Failed)
	}
}

func newRootCmd(cfg utils.Config, open func(context.Context, utils.Config) (*env, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Import, migrate and purge storefront catalog data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var onlyIfEmpty bool
	importCmd := &cobra.Command{
		Use:   "import [products.json]",
		Short: "Create every product listed in a products file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.ProductsFile
			if len(args) == 1 {
				path = args[0]
			}
			products, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d products from %s\n", len(products), path)

			e, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer e.close()

			im := catalog.NewImporter(e.products, zap.L())
			var sum catalog.Summary
			if onlyIfEmpty {
				if sum, err = im.Seed(cmd.Context(), products); err != nil {
					return err
				}
			} else {
				sum = im.Import(cmd.Context(), products)
			}
			printSummary(cmd, "IMPORT SUMMARY", sum)
			if sum.Failed > 0 {
				return errors.Errorf("%d products failed to import", sum.Failed)
			}
			return nil
		},
	}
	importCmd.Flags().BoolVar(&onlyIfEmpty, "if-empty", false, "skip the import when the catalog already has products")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite legacy category, rarity, breathing style and weapon values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer e.close()

			sum, err := catalog.NewImporter(e.products, zap.L()).Migrate(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd, "MIGRATION SUMMARY", sum)
			return nil
		},
	}

	var confirm bool
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every product in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to delete the catalog without --yes")
			}
			e, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer e.close()

			n, err := catalog.NewImporter(e.products, zap.L()).Purge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d products\n", n)
			return nil
		},
	}
	purgeCmd.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")

	admin := models.User{
		FirstName: envOr("ADMIN_FIRSTNAME", "Admin"),
		LastName:  envOr("ADMIN_LASTNAME", "User"),
		Email:     os.Getenv("ADMIN_EMAIL"),
		Password:  os.Getenv("ADMIN_PASSWORD"),
	}
	adminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer e.close()

			u, err := controllers.CreateAccount(cmd.Context(), e.users, admin, models.RoleAdmin)
			if errors.Is(err, controllers.ErrAdminExists) {
				fmt.Fprintln(cmd.OutOrStdout(), "Admin user already exists, nothing to do.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s\n", u.Email)
			return nil
		},
	}
	adminCmd.Flags().StringVar(&admin.Email, "email", admin.Email, "admin email (ADMIN_EMAIL)")
	adminCmd.Flags().StringVar(&admin.Password, "password", admin.Password, "admin password (ADMIN_PASSWORD)")
	adminCmd.Flags().StringVar(&admin.FirstName, "first-name", admin.FirstName, "admin first name")
	adminCmd.Flags().StringVar(&admin.LastName, "last-name", admin.LastName, "admin last name")

	root.AddCommand(importCmd, migrateCmd, purgeCmd, adminCmd)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	cfg := utils.LoadConfig()
	logger, err := utils.NewLogger(cfg.Production())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	if !cfg.DotEnvLoaded {
		zap.S().Info("No .env file found. Proceeding with environment variables.")
	}

	if err := newRootCmd(cfg, openEnv).ExecuteContext(context.Background()); err != nil {
		zap.L().Error("catalogctl failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
