package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/usersapi/users-contract-tests/config"
	"github.com/usersapi/users-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	configFile    string
	serviceURL    string
	pageSizes     pageSizeList
	missingUserID int64
	filters       framework.RegexFilters
	debug         bool
	debugAll      bool
	setFlags      map[string]bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configFile, "config", "", "YAML config file (default: $"+config.EnvConfigFile+")")
	fs.StringVar(&c.serviceURL, "url", "", "users collection URL (default: $"+config.EnvBaseURL+" or "+config.DefaultBaseURL+")")
	fs.Var(&c.pageSizes, "page-size", "page size(s) to request in the list test, repeatable or comma-separated")
	fs.Int64Var(&c.missingUserID, "missing-id", config.DefaultMissingUserID, "a user id that the service has never assigned")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	c.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.setFlags[f.Name] = true })
	return true
}

// resolveConfig loads the configuration and applies any flags that were given explicitly.
func (c *commandParams) resolveConfig() (config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if c.setFlags["url"] {
		cfg.BaseURL = c.serviceURL
	}
	if c.setFlags["page-size"] {
		cfg.PageSizes = c.pageSizes
	}
	if c.setFlags["missing-id"] {
		cfg.MissingUserID = c.missingUserID
	}
	return cfg, cfg.Validate()
}

type pageSizeList []int

func (p pageSizeList) String() string {
	var ss []string
	for _, n := range p {
		ss = append(ss, strconv.Itoa(n))
	}
	return strings.Join(ss, ",")
}

func (p *pageSizeList) Set(value string) error {
	sizes, err := config.ParsePageSizes(value)
	if err != nil {
		return err
	}
	*p = append(*p, sizes...)
	return nil
}

// rerunCommand builds a shell command line that repeats this run with the same arguments, except
// that only the given tests are selected.
func rerunCommand(args []string, tests []framework.TestID) string {
	var b commandBuilder
	b.add(args[0])
	for i := 1; i < len(args); i++ {
		arg := args[i]
		name := strings.TrimLeft(arg, "-")
		if name == "run" {
			i++
			continue
		}
		if strings.HasPrefix(name, "run=") {
			continue
		}
		b.add(arg)
	}
	for _, id := range tests {
		b.add("-run", exactTestPattern(id))
	}
	return b.String()
}

func exactTestPattern(id framework.TestID) string {
	elements := make([]string, 0, len(id.Path))
	for _, e := range id.Path {
		elements = append(elements, "^"+regexp.QuoteMeta(e)+"$")
	}
	return strings.Join(elements, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
