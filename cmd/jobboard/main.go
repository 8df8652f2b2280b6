// Command jobboard serves the mock job board API and drives a job board
// session from the terminal.
//
//	@title						Job Board Mock API
//	@version					1.0
//	@description				In-memory job board backend: listings, sessions, sub-users and companies.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
