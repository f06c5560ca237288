// Command catalog manages the capybara shop product catalog.
package main

import (
	"context"
	"os"

	"github.com/lojacapivara/catalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
