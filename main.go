package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/usersapi/users-contract-tests/framework"
	"github.com/usersapi/users-contract-tests/usertests"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	logger := newDiagnosticLogger(params.debugAll)
	slog.SetDefault(logger)

	cfg, err := params.resolveConfig()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Debug("Configuration resolved",
		"baseUrl", cfg.BaseURL,
		"pageSizes", cfg.PageSizes,
		"missingUserId", cfg.MissingUserID,
	)

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.SlogLogger(logger)
	}

	harness, err := framework.NewTestHarness(cfg.BaseURL, nil, mainDebugLogger)
	if err != nil {
		logger.Error("Can't start test harness", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Printf("Running users API contract tests against %s\n", harness.ServiceBaseURL())

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	suiteParams := usertests.Params{
		PageSizes:     cfg.PageSizes,
		MissingUserID: cfg.MissingUserID,
	}
	results := usertests.RunTestSuite(harness, suiteParams, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the tests that did not pass:")
		fmt.Printf("  %s\n", rerunCommand(os.Args, results.NotOK()))
		os.Exit(1)
	}
}

func newDiagnosticLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    color.NoColor,
	}))
}
