package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/emotube/backend/internal/app"
)

const usage = `usage: emotube <command> [args]

commands:
  serve                 run the HTTP API
  migrate [up|status]   apply or list database migrations
  analyze <url|id>      print the report for one video
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
