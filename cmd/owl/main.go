package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/panyam/owl/cmd/owl/commands"
)

func main() {
	envfile := ".env"
	if env := os.Getenv("OWL_ENV"); env != "" {
		envfile = ".env." + env
	}
	if os.Getenv("OWL_ENV") == "dev" {
		logger := slog.New(commands.NewPrettyHandler(os.Stderr, commands.PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		}))
		slog.SetDefault(logger)
	}
	if err := godotenv.Load(envfile); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load env file", "file", envfile, "error", err)
	}
	commands.Execute()
}
