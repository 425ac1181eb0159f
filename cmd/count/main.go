package count

import (
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/cmd/options"
	"github.com/alpacahq/bizday/udf"
)

const (
	usage   = "count"
	short   = "Count business days between two date columns"
	long    = "This command counts the business days in [start, end) for every row of a csv file. Reversed ranges count negatively."
	example = "bizday count --input spans.csv --holiday-calendar us-market"
)

var (
	// Cmd is the count command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeCount,
	}
	startColumn string
	endColumn   string
	as          string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVar(&startColumn, "start-column", "start", "name of the start date column")
	Cmd.Flags().StringVar(&endColumn, "end-column", "end", "name of the end date column")
	Cmd.Flags().StringVar(&as, "as", "workdays", "name of the result column")
}

func executeCount(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	env, err := options.Global.Load()
	if err != nil {
		return err
	}
	cs, err := options.Global.ReadInput(cmd, env, loader.Schema{Temporal: []string{startColumn, endColumn}})
	if err != nil {
		return err
	}
	result, err := udf.WorkdayCount(cs.GetByName(startColumn), cs.GetByName(endColumn), env.Params)
	if err != nil {
		return err
	}
	cs.AddColumn(as, result)
	return options.Global.WriteOutput(cmd, cs)
}
