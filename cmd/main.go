package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/cmd/count"
	"github.com/alpacahq/bizday/cmd/daterange"
	"github.com/alpacahq/bizday/cmd/holidays"
	"github.com/alpacahq/bizday/cmd/isworkday"
	"github.com/alpacahq/bizday/cmd/offset"
	"github.com/alpacahq/bizday/cmd/options"
	"github.com/alpacahq/bizday/metrics"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/log"
)

// flagPrintVersion set flag to show current bizday version.
var flagPrintVersion bool

// NewRootCommand builds the command tree. The shared flags are reset to
// their defaults on every call.
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "bizday",
		Short: "Business day arithmetic over csv files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagPrintVersion {
				log.Info("version: %+v", utils.Tag)
				log.Info("commit hash: %+v", utils.GitHash)
				log.Info("utc build time: %+v", utils.BuildStamp)
				return nil
			}
			return cmd.Usage()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			defer log.Sync()
			if path := options.Global.MetricsFile; path != "" {
				return metrics.WriteTextfile(path)
			}
			return nil
		},
	}

	options.Global.Register(c)
	c.AddCommand(offset.Cmd)
	c.AddCommand(count.Cmd)
	c.AddCommand(isworkday.Cmd)
	c.AddCommand(daterange.Cmd)
	c.AddCommand(holidays.Cmd)
	c.Flags().BoolVarP(&flagPrintVersion, "version", "v", false, "show the version info and exit")
	return c
}

// Execute builds the command tree and executes commands.
func Execute() error {
	return NewRootCommand().Execute()
}
