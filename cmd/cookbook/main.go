// Command cookbook runs the Cookbook API server and its maintenance tools.
//
// @title Cookbook API
// @version 1.0
// @description Items, tasks, auth, blog, events, chat, charts and GraphQL behind one Echo server.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"evalgo.org/cookbook/internal/commands"
	"evalgo.org/cookbook/internal/version"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	version.Version = Version
	version.BuildTime = BuildTime
	version.GitCommit = GitCommit

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
