package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/bookshelf/seed"
)

/* validate-seed - Standalone CLI tool to validate a seed catalog
 * Usage: go run cmd/validate-seed/main.go [seed.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	seedFile := "seed.yaml"
	if len(os.Args) > 1 {
		seedFile = os.Args[1]
	}

	fmt.Printf("Validating seed file: %s\n", seedFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := seed.NewLoader()
	if err := loader.Load(seedFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	shelves := loader.List()
	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("Loaded %d user(s) and %d book(s):\n", len(shelves), loader.BookCount())

	for i, shelf := range shelves {
		fmt.Printf("\n%d. User: %s\n", i+1, shelf.Name)
		fmt.Printf("   Books: %d (%d read)\n", len(shelf.Books), shelf.ReadCount())
		for _, e := range shelf.Books {
			state := "unread"
			if e.Read {
				state = "read, " + e.Rating.String()
			}
			fmt.Printf("   - %s by %s [%s] %s\n", e.Title, e.Author, e.Genre, state)
		}
	}

	fmt.Printf("\n✓ Seed catalog is valid!\n")
	os.Exit(0)
}
