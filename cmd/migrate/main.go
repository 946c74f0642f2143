// Command migrate applies and authors the shop's PostgreSQL schema migrations.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/logger"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultCreateDir = "internal/infrastructure/migration/migrations"

// invocation is what a command runs with.
type invocation struct {
	log  *zap.Logger
	dir  string // migrations directory on disk, empty for the embedded set
	args []string
	m    *migration.Migrator // nil for offline commands
}

type command struct {
	usage   string
	summary string
	offline bool // runs without a database connection
	run     func(inv invocation) error
}

var commands = map[string]command{
	"up": {usage: "up", summary: "Apply all pending migrations", run: func(inv invocation) error {
		return inv.m.Up()
	}},
	"down": {usage: "down", summary: "Roll back every migration", run: func(inv invocation) error {
		return inv.m.Down()
	}},
	"step": {usage: "step <n>", summary: "Move n migrations (negative rolls back)", run: func(inv invocation) error {
		n, err := strconv.Atoi(inv.args[0])
		if err != nil {
			return fmt.Errorf("step count %q: %w", inv.args[0], err)
		}
		return inv.m.Steps(n)
	}},
	"goto": {usage: "goto <version>", summary: "Migrate up or down to version", run: func(inv invocation) error {
		v, err := strconv.ParseUint(inv.args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("version %q: %w", inv.args[0], err)
		}
		return inv.m.GoTo(uint(v))
	}},
	"force": {usage: "force <version>", summary: "Record version as applied without running it", run: func(inv invocation) error {
		v, err := strconv.Atoi(inv.args[0])
		if err != nil {
			return fmt.Errorf("version %q: %w", inv.args[0], err)
		}
		inv.log.Warn("Forcing schema version", zap.Int("version", v))
		return inv.m.Force(v)
	}},
	"version": {usage: "version", summary: "Show the applied version", run: func(inv invocation) error {
		v, dirty, err := inv.m.Version()
		if err != nil {
			return err
		}
		if v == 0 {
			inv.log.Info("No migrations applied")
			return nil
		}
		inv.log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
	"create": {usage: "create <name> [description]", summary: "Write a new up/down file pair", offline: true, run: create},
	"list":   {usage: "list", summary: "List available migrations", offline: true, run: list},
}

func main() {
	dir := flag.String("path", "", "migrations directory (default: the set embedded in the binary)")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	log, err := logger.New(logger.Config{Level: *level, Format: "console", Output: "stdout", TimeFormat: time.DateTime})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := execute(log, cmd, *dir, args); err != nil {
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}

func execute(log *zap.Logger, cmd command, dir string, args []string) error {
	if want := countArgs(cmd.usage); len(args) < want {
		return fmt.Errorf("usage: migrate %s", cmd.usage)
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		dir = abs
	}
	inv := invocation{log: log, dir: dir, args: args}
	if cmd.offline {
		return cmd.run(inv)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("reach database %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err)
	}

	var opts []migration.Option
	if dir != "" {
		opts = append(opts, migration.WithPath(dir))
	}
	inv.m, err = migration.New(db, log, opts...)
	if err != nil {
		_ = db.Close()
		return err
	}
	return errors.Join(cmd.run(inv), inv.m.Close())
}

// countArgs counts the required <placeholders> in a usage line.
func countArgs(usage string) int {
	n := 0
	for _, r := range usage {
		if r == '<' {
			n++
		}
	}
	return n
}

func create(inv invocation) error {
	dir := inv.dir
	if dir == "" {
		dir = defaultCreateDir
	}
	var description string
	if len(inv.args) > 1 {
		description = inv.args[1]
	}
	mf, err := migration.CreateMigration(dir, inv.args[0], description)
	if err != nil {
		return err
	}
	inv.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath))
	return nil
}

func list(inv invocation) error {
	var (
		found []migration.Migration
		err   error
	)
	if inv.dir == "" {
		found, err = migration.Embedded()
	} else {
		found, err = migration.ListMigrations(os.DirFS(inv.dir))
	}
	if err != nil {
		return err
	}
	for _, m := range found {
		suffix := ""
		if !m.HasDown {
			suffix = "  (no down file)"
		}
		fmt.Printf("%s%s\n", m, suffix)
	}
	inv.log.Info("Migrations listed", zap.Int("count", len(found)))
	return nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: migrate [flags] <command> [arguments]\n\nCommands:")
	for _, name := range []string{"up", "down", "step", "goto", "version", "force", "create", "list"} {
		fmt.Fprintf(out, "  %-28s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\nThe database comes from config.toml or SHOP_DATABASE_* variables.\n"+
		"create writes to %s unless -path is set.\n", defaultCreateDir)
}
