// Command plistfmt rewrites launchd descriptor files in canonical form.
//
// Usage:
//
//	plistfmt [-w] [-json] file...
//
// Without flags the canonical encoding of each file is printed to stdout.
// With -w the file is rewritten in place when its text changes. With -json
// the decoded document is printed as JSON instead.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/billie-coop/agentdeck/internal/plist"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plistfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	asJSON := fs.Bool("json", false, "print the decoded document as JSON")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: plistfmt [-w] [-json] file...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if *write && *asJSON {
		fmt.Fprintln(stderr, "plistfmt: -w and -json cannot be combined")
		return 2
	}

	status := 0
	for _, path := range fs.Args() {
		if err := format(path, *write, *asJSON, stdout); err != nil {
			fmt.Fprintf(stderr, "plistfmt: %v\n", err)
			status = 1
		}
	}
	return status
}

func format(path string, write, asJSON bool, out io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc := plist.Decode(string(src))
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	text := plist.Encode(doc)
	if !write {
		_, err := io.WriteString(out, text)
		return err
	}
	if text == string(src) {
		return nil
	}
	if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}
