package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/auth"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/config"
)

// runToken issues a bearer token for the admin API and prints it to out.
// It returns the process exit code.
func runToken(cfg *config.Config, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(errOut)
	subject := fs.String("subject", "", "Token subject, e.g. an operator email")
	role := fs.String("role", auth.RoleAdmin, "Role claim")
	ttl := fs.Duration("ttl", 0, "Token lifetime (default: jwt.access_token_expiration)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *subject == "" {
		fmt.Fprintln(errOut, "token: -subject is required")
		fs.Usage()
		return 2
	}

	issued, err := auth.NewJWTService(cfg.JWT).Issue(*subject, *role, *ttl)
	if err != nil {
		fmt.Fprintf(errOut, "token: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, issued.AccessToken)
	fmt.Fprintf(errOut, "expires at %s\n", issued.ExpiresAt.Format(time.RFC3339))
	return 0
}
