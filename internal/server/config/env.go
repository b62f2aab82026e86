package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/photoshare/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// defaultEnvFile is loaded when present and no -env-file flag is given.
const defaultEnvFile = ".env"

// parseEnv overlays PHOTOSHARE_* environment variables onto config.
//
// A dotenv file named by -env-file (or ./.env if it exists) is loaded into
// the process environment first; variables already set in the real
// environment win over the file. Variables that are unset leave the
// corresponding field untouched. A missing explicit env file or a malformed
// value panics, matching parseJson.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	// StrictDecode reports ErrInvalidTarget when no variable is set.
	if err := envdecode.StrictDecode(config); err != nil && !errors.Is(err, envdecode.ErrInvalidTarget) {
		panic(err)
	}
}
