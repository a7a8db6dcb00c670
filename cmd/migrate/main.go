package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/shared"
)

func main() {
	_ = godotenv.Load()

	var dir string

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "stayhub schema migration tool",
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "directory containing ordered .sql files")

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "apply all .sql files in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv)

			db, err := sql.Open("mysql", cfg.MySQLDSN+"&multiStatements=true")
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				return err
			}
			return apply(db, dir)
		},
	}

	rootCmd.AddCommand(upCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func apply(db *sql.DB, dir string) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}
		log.Info().Str("file", f).Msg("migration applied")
	}
	return nil
}
