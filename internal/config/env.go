package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/gitin/internal/logfields"
)

// envFiles are loaded in order; variables already present in the
// environment are never overwritten.
var envFiles = []string{".env", ".env.local"}

// LoadEnv loads the .env files present in the working directory.
func LoadEnv() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
		slog.Debug("Loaded environment variables", logfields.File(name))
	}
	return nil
}

// expandEnv substitutes $VAR and ${VAR} from the environment. Unset
// variables are left as written, so placeholders such as $scheme in
// highlightcmd survive.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return "$" + key
	})
}
