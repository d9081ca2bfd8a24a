// statusctl issues admin tokens and hashes webhook API keys for config.yaml.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"statusboard/config"
	"statusboard/internals/security"
	"strings"
)

const usage = `usage:
  statusctl token    [-config config.yaml] [-subject name]
  statusctl hash-key [-key value]   (reads the key from stdin when -key is empty)
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "statusctl:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		configPath := fs.String("config", "config.yaml", "path to the YAML config file")
		subject := fs.String("subject", "admin", "token subject")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		token, err := security.NewTokenService(cfg.Auth).GenerateAdminToken(*subject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, token)
		return err

	case "hash-key":
		fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
		key := fs.String("key", "", "API key to hash")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *key == "" {
			line, err := bufio.NewReader(stdin).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			*key = strings.TrimSpace(line)
		}
		hash, err := security.HashAPIKey(*key, nil)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, hash)
		return err

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
