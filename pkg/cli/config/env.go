package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const envFileEnv = "DEVPORTAL_ENV_FILE"

// Env holds .env file configuration for local runs
type Env struct {
	Files []string
}

// Flags returns CLI flags for .env loading
func (c *Env) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "env-file",
			Usage:       "Load environment variables from file (repeatable)",
			Destination: &c.Files,
			Sources:     cli.EnvVars(envFileEnv),
		},
	}
}

// Preload collects env files from DEVPORTAL_ENV_FILE and --env-file in args and
// loads them. Flag env sources are resolved while parsing, so this has to run
// before the command is started.
func (c *Env) Preload(args []string) error {
	var files []string
	if v := os.Getenv(envFileEnv); v != "" {
		files = append(files, strings.Split(v, ",")...)
	}

scan:
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			break scan
		case arg == "--env-file" || arg == "-env-file":
			if i+1 < len(args) {
				files = append(files, args[i+1])
				i++
			}
		case strings.HasPrefix(arg, "--env-file="):
			files = append(files, strings.TrimPrefix(arg, "--env-file="))
		}
	}

	c.Files = files
	return c.Configure()
}

// Configure loads the env files. Variables already set in the process environment are kept.
func (c *Env) Configure() error {
	if len(c.Files) == 0 {
		return nil
	}

	if err := godotenv.Load(c.Files...); err != nil {
		return goerr.Wrap(err, "failed to load env file", goerr.V("files", c.Files))
	}
	return nil
}
