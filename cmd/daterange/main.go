package daterange

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/cmd/options"
	"github.com/alpacahq/bizday/udf"
	"github.com/alpacahq/bizday/utils/io"
)

const (
	usage   = "range"
	short   = "List the business days between two dates"
	long    = "This command lists every business day among start, start+N, start+2N, ... up to end, for an interval of Nbd"
	example = "bizday range --start 2024-01-01 --end 2024-02-01 --interval 1bd --closed left"
)

var (
	// Cmd is the range command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeRange,
	}
	start    string
	end      string
	interval string
	closed   string
	as       string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	Cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	Cmd.Flags().StringVar(&interval, "interval", "1bd", "step between candidate dates")
	Cmd.Flags().StringVar(&closed, "closed", "both", "endpoints to include: both, left, right or none")
	Cmd.Flags().StringVar(&as, "as", "date", "name of the result column")
}

func executeRange(cmd *cobra.Command, _ []string) error {
	if start == "" || end == "" {
		return errors.New("--start and --end are required")
	}
	from, err := calendar.ParseOrdinal(start)
	if err != nil {
		return err
	}
	to, err := calendar.ParseOrdinal(end)
	if err != nil {
		return err
	}
	c, err := udf.ParseClosed(closed)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	env, err := options.Global.Load()
	if err != nil {
		return err
	}
	days, err := udf.DateRange(from, to, interval, c, env.Params)
	if err != nil {
		return err
	}
	cs := io.NewColumnSeries()
	cs.AddColumn(as, days)
	return options.Global.WriteOutput(cmd, cs)
}
