package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	sub := os.Args[1]
	args := os.Args[2:]
	var err error
	switch sub {
	case "serve":
		err = runServe(args)
	case "render":
		err = runRender(args, os.Stdout)
	case "check":
		err = runCheck(args, os.Stdout)
	case "migrate":
		err = runMigrate(args)
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "editor: unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ editor: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `editor - multilingual email template editor

usage: editor <command> [options] [paths]

commands:
  serve      Start the HTTP editor API (configured through the environment / .env).
  render     Render a template file for one locale: editor render -locale fr welcome.json
  check      Validate a template file and report unused or missing placeholders.
  migrate    Apply (or with -down N, revert) database migrations.

Use 'editor <command> -h' for command-specific flags.
`)
}
