package offset

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/cmd/options"
	"github.com/alpacahq/bizday/udf"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

const (
	usage   = "offset"
	short   = "Move dates by a number of business days"
	long    = "This command reads a csv file and moves every date by a fixed interval or by a per-row offset column. An interval is a business day count combined with an optional calendar part, e.g. 1mo1bd or 2bd3h"
	example = "bizday offset --input trades.csv --by 3bd --roll forward"
)

var (
	// Cmd is the offset command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"advance"},
		SuggestFor: []string{"shift", "add"},
		Example:    example,
		RunE:       executeOffset,
	}
	column   string
	by       string
	byColumn string
	as       string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringVar(&column, "column", "date", "name of the date or datetime column")
	Cmd.Flags().StringVar(&by, "by", "", "interval applied to every row, e.g. 3bd, -1bd or 2bd3h")
	Cmd.Flags().StringVar(&byColumn, "by-column", "", "column holding an integer offset or an interval per row")
	Cmd.Flags().StringVar(&as, "as", "offset", "name of the result column")
}

func executeOffset(cmd *cobra.Command, _ []string) error {
	if (by == "") == (byColumn == "") {
		return errors.New("exactly one of --by and --by-column is required")
	}
	cmd.SilenceUsage = true

	env, err := options.Global.Load()
	if err != nil {
		return err
	}
	cs, err := options.Global.ReadInput(cmd, env, loader.Schema{Temporal: []string{column}})
	if err != nil {
		return err
	}
	dates := cs.GetByName(column)

	var result *io.Column
	if by != "" {
		result, err = udf.OffsetBy(dates, by, env.Params)
	} else {
		offsets := cs.GetByName(byColumn)
		if offsets == nil {
			return errors.Errorf("column %q not found in input", byColumn)
		}
		if n, ok := integers(offsets); ok {
			result, err = udf.AdvanceNDays(dates, n, env.Params)
		} else {
			result, err = udf.OffsetByColumn(dates, offsets, env.Params)
		}
	}
	if err != nil {
		return err
	}

	log.Debug("offset %d rows of %s", result.Len(), column)
	cs.AddColumn(as, result)
	return options.Global.WriteOutput(cmd, cs)
}

// integers converts a string column whose every value is a plain integer.
func integers(col *io.Column) (*io.Column, bool) {
	strs := col.Strings()
	values := make([]int64, col.Len())
	for i := range values {
		if col.IsNull(i) {
			continue
		}
		v, err := strconv.ParseInt(strs[i], 10, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return io.NewInt64Column(values, col.Validity()), true
}
