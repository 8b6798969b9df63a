package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hanifn/expense-log/internal/category"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default categories",
	Long:  `Seed the database with the default category palette for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM expenses"); err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			if _, err := db.Exec("DELETE FROM categories"); err != nil {
				log.Fatalf("failed to clear categories: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		for _, set := range category.Palette() {
			var exists int
			row := db.QueryRow("SELECT 1 FROM categories WHERE lower(name) = lower($1)", set.Name)
			if err := row.Scan(&exists); err == nil {
				continue
			}

			_, err := db.Exec(
				"INSERT INTO categories (id, name, color, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				uuid.NewString(), set.Name, set.TextColor,
			)
			if err != nil {
				log.Fatalf("failed to insert category %s: %v", set.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", set.Name)
		}

		fmt.Println("Categories seeded successfully")
	},
}
