package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/cmmc-trail/internal/store"
	"github.com/DaanHessen/cmmc-trail/internal/text"
	"github.com/DaanHessen/cmmc-trail/internal/ui"
	"github.com/DaanHessen/cmmc-trail/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var flags util.Config
	configPath := flag.String("config", os.Getenv("CMMC_CONFIG"), "YAML config file")
	flag.StringVar(&flags.SeedText, "seed", "", "Run seed string (optional; random if omitted)")
	flag.StringVar(&flags.DSN, "dsn", envDSN(), "Leaderboard database (sqlite://path or postgres://...)")
	flag.StringVar(&flags.Difficulty, "difficulty", "", "easy|normal|hard|nightmare")
	flag.StringVar(&flags.Theme, "theme", "", "terminal|amber|catppuccin|dracula")
	flag.StringVar(&flags.MigrationsDir, "migrations", "", "Read migrations from this directory instead of the embedded copy")
	flag.StringVar(&flags.CertificateDir, "certificates", "", "Directory for exported certificates")
	flag.BoolVar(&flags.NoStore, "no-store", false, "Play without a leaderboard database")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cmmc-trail [--seed seed] [--dsn DSN] [--difficulty level] [--theme name] [--config file] [--no-store] | migrate up|down|status | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := util.Defaults()
	if *configPath != "" {
		fileCfg, err := util.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = util.Overlay(cfg, fileCfg)
	}
	cfg = util.Overlay(cfg, explicitFlags(flags))
	cfg.Debug = cfg.Debug || os.Getenv("CMMC_DEBUG") == "1"
	cfg.Version = version

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("cmmc-trail", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up', 'down' or 'status'")
			}
			if err := runMigrate(cfg, args[1]); err != nil {
				log.Fatal(err)
			}
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	if cfg.SeedText == "" {
		generated, err := generateSeed()
		if err != nil {
			log.Fatalf("failed to generate seed: %v", err)
		}
		cfg.SeedText = generated
		fmt.Printf("New run seed: %s\n", cfg.SeedText)
	}

	ctx := context.Background()

	var repo store.Repository
	if !cfg.NoStore {
		r, err := openRepository(ctx, cfg)
		if err != nil {
			log.Printf("leaderboard disabled: %v", err)
		} else {
			repo = r
			defer r.Close()
		}
	}

	narrator := text.WithFallback(nil, text.NewTemplateNarrator())
	if err := ui.Run(ctx, repo, narrator, cfg); err != nil {
		log.Fatal(err)
	}
}

// explicitFlags keeps only the flags the user actually passed, so defaults don't mask the config file.
func explicitFlags(all util.Config) util.Config {
	var out util.Config
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			out.SeedText = all.SeedText
		case "difficulty":
			out.Difficulty = all.Difficulty
		case "theme":
			out.Theme = all.Theme
		case "migrations":
			out.MigrationsDir = all.MigrationsDir
		case "certificates":
			out.CertificateDir = all.CertificateDir
		case "no-store":
			out.NoStore = all.NoStore
		}
	})
	// dsn counts as explicit when it came from the environment too
	if all.DSN != "" {
		out.DSN = all.DSN
	}
	return out
}

func envDSN() string {
	if v := os.Getenv("CMMC_DSN"); v != "" {
		return v
	}
	return os.Getenv("DATABASE_URL")
}

func runMigrate(cfg util.Config, action string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(cfg.DSN, cfg.MigrationsDir)
	if err != nil {
		return err
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Println("Migrations rolled back")
	case "status":
		v, dirty, err := migrator.Version(ctx)
		switch {
		case errors.Is(err, store.ErrNoChange):
			fmt.Println("No migrations applied")
		case err != nil:
			return err
		default:
			fmt.Printf("Schema version %d (dirty=%t)\n", v, dirty)
		}
	default:
		return fmt.Errorf("unknown migrate action %q; use up|down|status", action)
	}
	return nil
}

// openRepository applies pending migrations before opening the leaderboard.
func openRepository(ctx context.Context, cfg util.Config) (store.Repository, error) {
	mig, err := store.NewMigrator(cfg.DSN, cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("migrations init failed: %w", err)
	}
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mig.Up(migCtx); err != nil && !errors.Is(err, store.ErrNoChange) {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return store.Open(ctx, cfg)
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
