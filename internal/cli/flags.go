package cli

import (
	"errors"
	"flag"
	"io"
)

// ScenarioFlags are the flags of the scenario command
type ScenarioFlags struct {
	ConfigPath   string
	ScenarioPath string
	Verbose      bool
}

// ParseScenarioFlags parses scenario command flags. A scenario file is
// required, either as -scenario or as the first positional argument.
func ParseScenarioFlags(args []string, output io.Writer) (*ScenarioFlags, error) {
	flags := &ScenarioFlags{}
	fs := flag.NewFlagSet("giftpool", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.ConfigPath, "config", "", "Configuration file path")
	fs.StringVar(&flags.ScenarioPath, "scenario", "", "Scenario YAML file to evaluate")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if flags.ScenarioPath == "" && fs.NArg() > 0 {
		flags.ScenarioPath = fs.Arg(0)
	}
	if flags.ScenarioPath == "" {
		return nil, errors.New("a scenario file is required")
	}
	return flags, nil
}

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	ConfigPath string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command. A zero
// port keeps the configured one.
func ParseServeFlags(args []string, output io.Writer) (*ServeFlags, error) {
	flags := &ServeFlags{}
	fs := flag.NewFlagSet("giftpool-api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.ConfigPath, "config", "", "Configuration file path")
	fs.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}
