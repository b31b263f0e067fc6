package cli

import (
	"context"
	"io"

	"github.com/eshaffer321/giftpool/internal/infrastructure/config"
	"github.com/eshaffer321/giftpool/internal/infrastructure/logging"
	"github.com/eshaffer321/giftpool/internal/infrastructure/tracing"
)

// RunScenario evaluates the scenario named by flags and prints the report
// to out. Engine logs go to stderr at the configured level.
func RunScenario(ctx context.Context, cfg *config.Config, flags *ScenarioFlags, out, logOut io.Writer) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerTo(logOut, loggingCfg).With("system", "cli")

	sc, err := LoadScenario(flags.ScenarioPath)
	if err != nil {
		return err
	}

	// Scenario runs are offline; spans are never exported.
	svc, err := NewService(cfg, logger, tracing.Noop())
	if err != nil {
		return err
	}

	report, err := Evaluate(ctx, svc, sc)
	if err != nil {
		return err
	}

	PrintReport(out, report)
	return nil
}
