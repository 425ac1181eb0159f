package isworkday

import (
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/cmd/options"
	"github.com/alpacahq/bizday/udf"
)

const (
	usage   = "isworkday"
	short   = "Flag the business days of a date column"
	long    = short
	example = "bizday isworkday --input dates.csv --weekend Fri,Sat"
)

var (
	// Cmd is the isworkday command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeIsWorkday,
	}
	column string
	as     string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVar(&column, "column", "date", "name of the date or datetime column")
	Cmd.Flags().StringVar(&as, "as", "is_workday", "name of the result column")
}

func executeIsWorkday(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	env, err := options.Global.Load()
	if err != nil {
		return err
	}
	cs, err := options.Global.ReadInput(cmd, env, loader.Schema{Temporal: []string{column}})
	if err != nil {
		return err
	}
	result, err := udf.IsWorkday(cs.GetByName(column), env.Params)
	if err != nil {
		return err
	}
	cs.AddColumn(as, result)
	return options.Global.WriteOutput(cmd, cs)
}
