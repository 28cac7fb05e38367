// Command dpmean computes a differentially private bounded mean over a
// stream of real-valued contributions.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	flag.Parse()
	defer log.Flush()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dpmean",
		Short: "Differentially private bounded mean aggregator",
		Long:  `dpmean ingests a stream of real-valued contributions and emits an (epsilon, delta)-differentially private estimate of their mean.`,
	}

	cmd.AddCommand(runCmd())
	cmd.AddCommand(mergeCmd())

	return cmd
}
