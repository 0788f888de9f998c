package cli

import (
	"os"
	"path/filepath"
	"testing"

	"spiritualgifts/config"
	"spiritualgifts/models"
)

func writeSQLiteConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "gifts.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "database:\n  driver: sqlite\n  sqlite_path: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("REDIS_ADDR", "")
	return cfgPath, dbPath
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "seed"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v", name, err)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil || root.PersistentFlags().Lookup("port") == nil {
		t.Fatalf("expected --config and --port flags")
	}
}

func TestMigrateAndSeedCommands(t *testing.T) {
	cfgPath, _ := writeSQLiteConfig(t)

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	root = newRootCmd()
	root.SetArgs([]string{"seed", "--questions", "--config", cfgPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	db, _, closeStores, err := openStores(cfg)
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	defer closeStores()

	var questions, descriptions, admins int64
	db.Model(&models.Question{}).Count(&questions)
	db.Model(&models.GiftDescription{}).Count(&descriptions)
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	if questions != 30 || descriptions != 6 || admins != 1 {
		t.Fatalf("unexpected seed counts: questions=%d descriptions=%d admins=%d", questions, descriptions, admins)
	}
}
