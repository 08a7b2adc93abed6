package commands

// Root command: holders-csv <input_csv> [-o|--output OUTPUT]
// Loads ambient config, sets up logging, runs one conversion.
// Conversion failures are printed, not returned.

import (
	"errors"
	"fmt"

	"holders-csv/internal/config"
	"holders-csv/internal/convert"
	"holders-csv/internal/infra/log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const defaultOutput = "holders.json"

type options struct {
	output string
}

func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}

// NewRootCmd builds the command; fsys is where the input is read and the output written.
func NewRootCmd(fsys afero.Fs) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "holders-csv <input_csv>",
		Short: "Convert a CSV of token holders to a JSON array of addresses",
		Long: `Reads a token holder CSV downloaded from a block explorer, keeps the first
column of every row that looks like an address (0x prefix, 42 characters) and
writes the addresses as a JSON array for deployment scripts.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer log.Sync()
			runConvert(convert.New(fsys), args[0], opts.output)
			return nil
		},
	}

	registerFlags(cmd.Flags(), opts)
	return cmd
}

func registerFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.output, "output", "o", defaultOutput,
		"The name of the output JSON file")
}

func setupLogging(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.ConsoleLevel()
	if err != nil {
		return err
	}
	return log.Init(log.Options{
		Console: cmd.OutOrStdout(),
		Dir:     cfg.Log.Dir,
		Level:   level,
		NoColor: cfg.Log.NoColor,
	})
}

// runConvert reports every failure on the console and never returns one.
func runConvert(c *convert.Converter, input, output string) {
	log.LogInfo("Converting holders CSV",
		zap.String("input", input),
		zap.String("output", output))

	_, err := c.Convert(input, output)
	switch {
	case err == nil:
	case errors.Is(err, convert.ErrInputNotFound):
		log.LogError(fmt.Sprintf("Input file not found at '%s'", input), zap.Error(err))
	default:
		log.LogError(fmt.Sprintf("An unexpected error occurred: %v", err), zap.Error(err))
	}
}
