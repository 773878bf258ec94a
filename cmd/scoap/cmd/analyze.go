package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/evenstarsworn/scoap.github.io/pkg/scoap"
	"github.com/evenstarsworn/scoap.github.io/pkg/utils"
)

var (
	outputFile string
	configFile string
	topN       int
	satCap     int64
	maxIters   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <circuit.bench>",
	Short: "Compute SCOAP metrics for a BENCH circuit",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to a file (default: stdout)")
	analyzeCmd.Flags().StringVar(&configFile, "config", "", "YAML config file with analysis parameters")
	analyzeCmd.Flags().IntVar(&topN, "top", 0, "log the N hardest nets after analysis")
	analyzeCmd.Flags().Int64Var(&satCap, "cap", scoap.DefaultSaturationCap, "controllability saturation cap")
	analyzeCmd.Flags().IntVar(&maxIters, "max-iterations", scoap.DefaultMaxIterations, "sequential convergence iteration bound")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logLevel := utils.InfoLevel
	if verbose {
		logLevel = utils.DebugLevel
	}
	var logger *utils.Logger
	var err error
	if logFile != "" {
		logger, err = utils.NewFileLogger(logLevel, logFile)
		if err != nil {
			return err
		}
	} else {
		logger = utils.NewLogger(logLevel)
	}

	cfg := scoap.DefaultConfig()
	if configFile != "" {
		cfg, err = scoap.LoadConfig(configFile)
		if err != nil {
			return err
		}
	}
	// Explicit flags win over the config file
	if cmd.Flags().Changed("cap") {
		cfg.SaturationCap = satCap
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = maxIters
	}

	logger.Info("Parsing circuit from %s", args[0])
	nl, err := utils.ParseBenchFile(args[0])
	if err != nil {
		return err
	}
	c, err := nl.Build()
	if err != nil {
		return err
	}
	logger.Info("%s", c)

	res, warn, err := scoap.Analyze(c, cfg, logger)
	if err != nil {
		return err
	}
	if warn != nil {
		logger.Warning("%v; reported values may be understated", warn)
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	if err := scoap.WriteReport(out, res); err != nil {
		return err
	}

	logger.Info("Analysis complete in %d iteration(s)", res.Iterations)
	if res.Capped > 0 {
		logger.Info("%d controllability values hit the saturation cap", res.Capped)
	}
	for _, m := range res.HardestNets(topN) {
		logger.Info("hard to test: %s (CC0=%s CC1=%s CO=%s)", m.Net, m.CC0, m.CC1, m.CO)
	}
	return nil
}
