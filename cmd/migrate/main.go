// Command migrate manages the PostgreSQL schema with the versioned SQL files
// in migrations/.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/sereci/sirepre/internal/infrastructure/config"
	"github.com/sereci/sirepre/internal/infrastructure/logger"
	"github.com/sereci/sirepre/internal/infrastructure/migration"
	"github.com/sereci/sirepre/migrations"
	"go.uber.org/zap"
)

const sourceDir = "migrations"

type env struct {
	log  *zap.Logger
	args []string
	dir  string
	m    *migration.Migrator
}

type command struct {
	usage   string
	minArgs int
	// offline commands work on the source tree only
	offline bool
	run     func(*env) error
}

var commands = map[string]command{
	"up":   {usage: "up", run: func(e *env) error { return e.m.Up() }},
	"down": {usage: "down", run: func(e *env) error { return e.m.Down() }},
	"step": {usage: "step <n>", minArgs: 1, run: func(e *env) error {
		n, err := strconv.Atoi(e.args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", e.args[0])
		}
		return e.m.Steps(n)
	}},
	"force": {usage: "force <version>", minArgs: 1, run: func(e *env) error {
		v, err := strconv.Atoi(e.args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", e.args[0])
		}
		return e.m.Force(v)
	}},
	"version": {usage: "version", run: showVersion},
	"create":  {usage: "create <name> [description]", minArgs: 1, offline: true, run: createFiles},
	"list":    {usage: "list", offline: true, run: listFiles},
}

func main() {
	dir := flag.String("path", "", "migrations directory; defaults to the embedded set, or ./migrations for create and list")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok || len(args) < cmd.minArgs {
		usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout", Service: "sirepre-migrate"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	e := &env{log: log, args: args, dir: *dir}
	if !cmd.offline {
		m, err := openMigrator(log, *dir)
		if err != nil {
			log.Fatal("Cannot open database", zap.Error(err))
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Warn("Closing migrator", zap.Error(err))
			}
		}()
		e.m = m
	}

	if err := cmd.run(e); err != nil {
		log.Error("Migration command failed", zap.String("command", name), zap.Error(err))
		os.Exit(1)
	}
}

// openMigrator connects with the server's configuration. The migrator owns
// the connection from then on.
func openMigrator(log *zap.Logger, dir string) (*migration.Migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == "sqlite" {
		return nil, errors.New("versioned migrations target PostgreSQL; SQLite schemas come from AutoMigrate at server start")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	var source fs.FS = migrations.FS
	if dir != "" {
		source = os.DirFS(dir)
		log.Info("Reading migrations from disk", zap.String("path", dir))
	}
	m, err := migration.New(db, source, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

func showVersion(e *env) error {
	v, dirty, err := e.m.Version()
	if err != nil {
		return err
	}
	if v == 0 {
		e.log.Info("No migrations applied")
		return nil
	}
	e.log.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

func createFiles(e *env) error {
	desc := ""
	if len(e.args) > 1 {
		desc = e.args[1]
	}
	mf, err := migration.CreateMigration(e.sourceDir(), e.args[0], desc)
	if err != nil {
		return err
	}
	e.log.Info("Migration files written",
		zap.Uint("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath))
	return nil
}

func listFiles(e *env) error {
	list, err := migration.ListMigrations(e.sourceDir())
	if err != nil {
		return err
	}
	for _, m := range list {
		suffix := ""
		if !m.HasDown {
			suffix = "  (no down)"
		}
		fmt.Printf("%06d  %s%s\n", m.Version, m.Name, suffix)
	}
	e.log.Info("Migrations listed", zap.Int("count", len(list)))
	return nil
}

func (e *env) sourceDir() string {
	if e.dir != "" {
		return e.dir
	}
	return sourceDir
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [-path dir] [-log-level level] <command>")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, name := range []string{"up", "down", "step", "version", "force", "create", "list"} {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "\nThe database is configured with SIREPRE_DATABASE_HOST, _PORT, _USER, _PASSWORD, _NAME and _SSL_MODE.")
	fmt.Fprintln(os.Stderr, "\nflags:")
	flag.PrintDefaults()
}
