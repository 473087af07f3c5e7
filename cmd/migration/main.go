package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/rl-fantasy/db/migrations"
	"github.com/riskibarqy/rl-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rl-fantasy/internal/platform/logging"
)

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

type command struct {
	usage string
	run   func(m migrator, args []string, out io.Writer) (string, error)
}

var commands = map[string]command{
	"up": {
		usage: "up",
		run: func(m migrator, _ []string, _ io.Writer) (string, error) {
			return "migrations applied", m.Up()
		},
	},
	"down": {
		usage: "down [steps]",
		run: func(m migrator, args []string, _ io.Writer) (string, error) {
			steps, err := parseSteps(args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("rolled back %d migration(s)", steps), m.Steps(-steps)
		},
	},
	"goto": {
		usage: "goto <version>",
		run: func(m migrator, args []string, _ io.Writer) (string, error) {
			if len(args) == 0 {
				return "", errors.New("goto requires a target version")
			}
			target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return "", fmt.Errorf("invalid target version %q: %w", args[0], err)
			}
			return fmt.Sprintf("migrated to version %d", target), m.Migrate(uint(target))
		},
	},
	"force": {
		usage: "force <version>",
		run: func(m migrator, args []string, _ io.Writer) (string, error) {
			if len(args) == 0 {
				return "", errors.New("force requires a version")
			}
			version, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || version < -1 {
				return "", fmt.Errorf("invalid version %q", args[0])
			}
			if err := m.Force(version); err != nil {
				return "", fmt.Errorf("force version %d: %w", version, err)
			}
			return fmt.Sprintf("forced version to %d", version), nil
		},
	},
	"version": {
		usage: "version",
		run: func(m migrator, _ []string, out io.Writer) (string, error) {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				_, _ = fmt.Fprintln(out, "version: none\ndirty: false")
				return "", nil
			}
			if err != nil {
				return "", fmt.Errorf("read version: %w", err)
			}
			_, _ = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
			return "", nil
		},
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	logger := logging.New(os.Stderr, logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		return 2
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	cmd, ok := commands[name]
	if !ok {
		printUsage(os.Stderr)
		return 2
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		return 1
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))
	dsn := postgres.OpenConfig{URL: dbURL, DisablePreparedBinaryResult: disableBinary}.DSN()

	m, source, err := newMigrator(dsn)
	if err != nil {
		logger.Error("create migrator", "error", err)
		return 1
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			logger.Warn("close migrator", "error", closeErr)
		}
	}()

	if err := execute(cmd, m, os.Args[2:], os.Stdout, logger.With("command", name, "source", source)); err != nil {
		logger.Error("migration failed", "command", name, "error", err)
		return 1
	}
	return 0
}

// execute treats migrate.ErrNoChange as success.
func execute(cmd command, m migrator, args []string, out io.Writer, logger *logging.Logger) error {
	msg, err := cmd.run(m, args, out)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	if msg != "" {
		logger.Info(msg)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

// newMigrator reads migrations from MIGRATIONS_DIR or MIGRATIONS_PATH when
// set, otherwise from the schema embedded in the binary.
func newMigrator(dsn string) (*migrate.Migrate, string, error) {
	if dir, ok := resolveMigrationsDir(); ok {
		sourceURL := "file://" + filepath.ToSlash(dir)
		m, err := migrate.New(sourceURL, dsn)
		return m, sourceURL, err
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, "", fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	return m, "embedded", err
}

func resolveMigrationsDir() (string, bool) {
	for _, key := range []string{"MIGRATIONS_DIR", "MIGRATIONS_PATH"} {
		candidate := strings.TrimSpace(os.Getenv(key))
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, true
		}
	}
	return "", false
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	bin := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "usage: %s <command> [args]\ncommands:\n", bin)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s %s\n", bin, commands[name].usage)
	}
}
