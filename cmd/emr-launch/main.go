// Where: cmd/emr-launch/main.go
// What: CLI entrypoint.
// Why: Execute emr-launch commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru-code/emr-launch/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], buildDependencies()))
}
