package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/deeplook/vbbvg"
	"github.com/deeplook/vbbvg/render"
	"github.com/deeplook/vbbvg/storage"
)

var (
	bold = color.New(color.Bold)
	red  = color.New(color.FgRed, color.Bold)
)

// Flag values for one invocation.
type options struct {
	verbose       bool
	header        bool
	selfTest      bool
	filterName    string
	filterLine    string
	numLineGroups int
	stop          string
	tablefmt      string

	// Settable through the environment as well.
	config *viper.Viper
}

func newRootCmd() *cobra.Command {
	o := &options{config: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "vbbvg",
		Short: "VBB departure boards",
		Long: "Shows upcoming departures for a stop in the Berlin-Brandenburg " +
			"public transport network (VBB)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.board,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Log what is going on")
	pf.StringVarP(&o.filterName, "filter-name", "", "(Berlin)", "Only consider stops with names containing EXPR")
	pf.StringP("url", "", vbbvg.DefaultURLTemplate, "Departure board URL, {stop} is replaced by the stop ID")
	pf.StringP("stops-file", "", "", "Stop reference CSV (stop_id,stop_name) to use instead of the bundled one, "+
		"which only holds a small excerpt of the VBB stops; pass the full table to resolve any other stop")
	pf.DurationP("timeout", "", vbbvg.DefaultTimeout, "Timeout for fetching departures")
	pf.StringP("storage", "", "memory", fmt.Sprintf("Stop storage backend (%s)", strings.Join(storage.Backends, "|")))

	f := rootCmd.Flags()
	f.BoolVarP(&o.header, "header", "", false, "Print current time, stop name and ID above the table")
	f.BoolVarP(&o.selfTest, "test", "", false, "Run example invocations for the stop given by --stop")
	f.StringVarP(&o.filterLine, "filter-line", "", "", "Only show lines containing EXPR, ignoring case")
	f.IntVarP(&o.numLineGroups, "num-line-groups", "", 1, "Departures to show per line and destination")
	f.StringVarP(&o.stop, "stop", "", "", "Stop name or ID, asked for if omitted")
	f.StringVarP(&o.tablefmt, "tablefmt", "", render.DefaultFormat, fmt.Sprintf("Table format (%s)", strings.Join(render.Formats(), "|")))

	o.config.SetEnvPrefix("VBBVG")
	o.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.config.AutomaticEnv()
	for _, name := range []string{"url", "stops-file", "timeout", "storage"} {
		o.config.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(newStopsCmd(o))

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	var netErr *vbbvg.NetworkError
	if errors.As(err, &netErr) {
		red.Println("Not connected to the internet?")
	} else {
		fmt.Println(err)
	}
	os.Exit(1)
}

func (o *options) logger() (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func (o *options) timeout() time.Duration {
	return o.config.GetDuration("timeout")
}

// Loads the stop directory, narrowed by --filter-name. The returned
// storage must be closed by the caller.
func (o *options) loadDirectory(logger *zap.Logger) (*vbbvg.Directory, storage.Storage, error) {
	s, err := storage.New(o.config.GetString("storage"))
	if err != nil {
		return nil, nil, err
	}

	d, err := vbbvg.LoadDirectory(logger, s, o.config.GetString("stops-file"))
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return d.FilterByName(o.filterName), s, nil
}

func (o *options) client(logger *zap.Logger) *vbbvg.Client {
	c := vbbvg.NewClient(logger)
	c.URLTemplate = o.config.GetString("url")
	c.Timeout = o.timeout()
	return c
}
