package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taxgo/taxgo/internal/api"
	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/config"
	"github.com/taxgo/taxgo/internal/domain"
	"github.com/taxgo/taxgo/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var decimalTwelve = decimal.NewFromInt(12)

var rootCmd = &cobra.Command{
	Use:   "taxgo",
	Short: "Indian income tax calculator CLI",
	Long:  "Slab-based Indian income tax computation: regime comparison, ITR form selection and tax-saving suggestions",
}

// newCalculator assembles a calculator from the shared flags: optional
// policy overlay, fiscal year override, debug logging, legacy ordering.
func newCalculator(cmd *cobra.Command, inputFY string) (*calculation.Calculator, error) {
	if policyFile, _ := cmd.Flags().GetString("policy-file"); policyFile != "" {
		years, err := config.LoadPolicyFile(policyFile)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Loaded policy tables for %v from %s\n", years, policyFile)
	}

	if fy, _ := cmd.Flags().GetString("fiscal-year"); fy != "" {
		inputFY = fy
	}

	calc, err := calculation.NewCalculator(inputFY)
	if err != nil {
		return nil, err
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		calc.SetLogger(simpleCLILogger{})
	}
	if legacy, _ := cmd.Flags().GetBool("legacy-itr-order"); legacy {
		calc.LegacyITROrdering = true
	}
	return calc, nil
}

func loadScenario(path string) *config.ScenarioInput {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return input
}

// buildReport runs the full pipeline for a scenario.
func buildReport(calc *calculation.Calculator, input *config.ScenarioInput) (*output.Report, error) {
	deductions := input.DeductionSet()

	comparison, err := calc.CompareRegimes(input.GrossTotalIncome(), input.Taxpayer.Age, deductions)
	if err != nil {
		return nil, err
	}

	selected := comparison.OldRegime
	if input.Regime() == domain.RegimeNew {
		selected = comparison.NewRegime
	}

	suggestions := calc.TaxSavingSuggestions(deductions)

	return &output.Report{
		FiscalYear:         calc.FiscalYear,
		SelectedRegime:     input.Regime(),
		Comparison:         comparison,
		RecommendedForm:    calc.DetermineITRForm(input.IncomeProfile()),
		MonthlyInstallment: selected.TotalTaxLiability.Div(decimalTwelve),
		SavingPotential:    calculation.SavingPotential(suggestions),
		Suggestions:        suggestions,
	}, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [scenario-file]",
	Short: "Calculate tax for a scenario under both regimes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadScenario(args[0])

		if regime, _ := cmd.Flags().GetString("regime"); regime != "" {
			if _, err := domain.ParseRegime(regime); err != nil {
				log.Fatal(err)
			}
			input.Taxpayer.Regime = regime
		}

		calc, err := newCalculator(cmd, input.FiscalYear)
		if err != nil {
			log.Fatal(err)
		}

		report, err := buildReport(calc, input)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(outputFormat)
		if formatter == nil {
			log.Fatalf("unknown output format %q (expected table, json or csv)", outputFormat)
		}

		data, err := formatter.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [scenario-file]",
	Short: "Compare tax liability under the old and new regimes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadScenario(args[0])

		calc, err := newCalculator(cmd, input.FiscalYear)
		if err != nil {
			log.Fatal(err)
		}

		comparison, err := calc.CompareRegimes(input.GrossTotalIncome(), input.Taxpayer.Age, input.DeductionSet())
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Fiscal Year %s\n", calc.FiscalYear)
		fmt.Printf("  Old regime total: ₹%s\n", comparison.OldRegime.TotalTaxLiability.StringFixed(2))
		fmt.Printf("  New regime total: ₹%s\n", comparison.NewRegime.TotalTaxLiability.StringFixed(2))
		fmt.Printf("  Better regime:    %s", comparison.BetterRegime)
		if comparison.Savings.IsPositive() {
			fmt.Printf(" (saves ₹%s)", comparison.Savings.StringFixed(2))
		}
		fmt.Println()
	},
}

var itrCmd = &cobra.Command{
	Use:   "itr [scenario-file]",
	Short: "Determine the appropriate ITR form for a scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadScenario(args[0])

		calc, err := newCalculator(cmd, input.FiscalYear)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(calc.DetermineITRForm(input.IncomeProfile()))
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [scenario-file]",
	Short: "List unused deduction headroom with investment suggestions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := loadScenario(args[0])

		calc, err := newCalculator(cmd, input.FiscalYear)
		if err != nil {
			log.Fatal(err)
		}

		suggestions := calc.TaxSavingSuggestions(input.DeductionSet())
		if len(suggestions) == 0 {
			fmt.Println("All tracked deduction limits are fully utilized.")
			return
		}
		for _, s := range suggestions {
			if s.Unlimited {
				fmt.Printf("%-10s current ₹%s, no upper limit\n", s.Section, s.CurrentAmount.StringFixed(0))
			} else {
				fmt.Printf("%-10s current ₹%s, remaining ₹%s of ₹%s\n",
					s.Section, s.CurrentAmount.StringFixed(0), s.RemainingLimit.StringFixed(0), s.MaxLimit.StringFixed(0))
			}
		}
		fmt.Printf("Total saving potential: ₹%s\n", calculation.SavingPotential(suggestions).StringFixed(0))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Scenario file %s is valid\n", args[0])
	},
}

var fyCmd = &cobra.Command{
	Use:   "fy",
	Short: "Print the current fiscal year and its date range",
	Run: func(cmd *cobra.Command, args []string) {
		fy := domain.CurrentFiscalYear()
		start, end := fy.Dates()
		fmt.Printf("%s (%s to %s)\n", fy, start.Format("2006-01-02"), end.Format("2006-01-02"))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tax engine over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newServeLogger()

		if policyFile := viper.GetString("policy_file"); policyFile != "" {
			years, err := config.LoadPolicyFile(policyFile)
			if err != nil {
				logger.Error("failed to load policy file", "path", policyFile, "error", err)
				os.Exit(1)
			}
			logger.Info("loaded policy tables", "path", policyFile, "years", years)
		}

		handler := api.NewHandler(viper.GetString("fiscal_year"))
		router := api.NewRouter(handler, viper.GetStringSlice("server.cors_origins"))

		srv := &http.Server{
			Addr:              viper.GetString("server.addr"),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Info("tax API listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", "error", err)
				os.Exit(1)
			}
		}()

		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	},
}

func newServeLogger() *slog.Logger {
	var level slog.Level
	switch viper.GetString("logging.level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxgo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var cfgFile string

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(fmt.Sprintf("%s/.config/taxgo", home))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TAXGO")
	viper.AutomaticEnv()

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("logging.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			log.Fatalf("failed to read config %s: %v", cfgFile, err)
		}
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/taxgo/config.yaml)")
	rootCmd.PersistentFlags().String("fiscal-year", "", "fiscal year override, e.g. 2023-24 (default: from scenario or today)")
	rootCmd.PersistentFlags().String("policy-file", "", "YAML policy overlay with additional fiscal-year tables")
	rootCmd.PersistentFlags().Bool("debug", false, "enable calculation debug logging")
	rootCmd.PersistentFlags().Bool("legacy-itr-order", false, "use the historical ITR-3-before-ITR-4 classification order")

	calculateCmd.Flags().String("format", "table", "output format: table, json or csv")
	calculateCmd.Flags().String("regime", "", "regime override: old or new (default: from scenario)")

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(itrCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
