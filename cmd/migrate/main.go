// Command migrate applies the schema in db/migrations to the configured database.
// Usage: go run ./cmd/migrate [-path db/migrations] up|down|steps N|force V|version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"khata/internal/config"
)

const usage = "Usage: migrate [-path dir] up|down|steps N|force V|version"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("path", "db/migrations", "migrations directory")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m, err := migrate.New("file://"+*dir, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Println("migrations applied")

	case "down":
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Println("migrations reverted")

	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(n)); err != nil {
			return fmt.Errorf("migration steps failed: %w", err)
		}
		log.Printf("applied %d migration steps", n)

	case "force":
		v, err := intArg(args, "force")
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force version failed: %w", err)
		}
		log.Printf("forced version %d", v)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n%s\n", args[0], usage)
		os.Exit(1)
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func intArg(args []string, name string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number argument", name)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid %s argument: %w", name, err)
	}
	return n, nil
}
