// Command migrate runs schema operations for the forum database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"forum/internal/config"
	"forum/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(database.Dialector(cfg), cfg.DBMaxOpenConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		for _, table := range []string{"users", "posts", "likes"} {
			log.Printf("%s present=%t", table, db.Migrator().HasTable(table))
		}
	default:
		return usage()
	}
	return nil
}
