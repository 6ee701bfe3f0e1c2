// Command jwt signs or verifies tokens from the command line, useful for
// crafting test credentials against a running API.
//
// Usage:
//
//	jwt sign <secret> <subject>
//	jwt verify <secret> <token>
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/filmoteca/filmoteca/internal/auth"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: jwt sign|verify <secret> <subject-or-token>")
	}

	option, secret, arg := args[0], args[1], args[2]

	tokens, err := auth.NewTokenService(secret)
	if err != nil {
		return err
	}

	switch option {
	case "sign":
		token, err := tokens.Issue(auth.Principal{ID: arg})
		if err != nil {
			return err
		}
		fmt.Println(token)
	case "verify":
		claims, err := tokens.Verify(arg)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(claims, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf(`option needs to be "sign" or "verify"`)
	}

	return nil
}
