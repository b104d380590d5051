// Command genseeds compiles the plain text seed lists of every network into
// the fixed-width seed tables of the netparams package.
package main

import (
	"fmt"
	"os"

	"github.com/galaxycoin/galaxyd/netparams"
	"github.com/jessevdk/go-flags"
)

type options struct {
	MainSeeds string `long:"main" description:"Seed list of the main network" required:"true"`
	TestSeeds string `long:"test" description:"Seed list of the test network" required:"true"`
	Out       string `long:"out" description:"File to write, stdout if empty"`
	Package   string `long:"package" description:"Package name of the generated file" default:"netparams"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	if err := run(&opts); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "genseeds:", err)
		os.Exit(1)
	}
}

// run compiles the seed lists named by opts and writes the result.
func run(opts *options) error {
	registry, err := netparams.NewRegistry(nil)
	if err != nil {
		return err
	}

	inputs := []struct {
		net     netparams.NetworkID
		path    string
		varName string
	}{
		{netparams.MainNet, opts.MainSeeds, "mainSeedTable"},
		{netparams.TestNet, opts.TestSeeds, "testSeedTable"},
	}

	tables := make([]seedTable, 0, len(inputs))
	for _, input := range inputs {
		params, err := registry.Params(input.net)
		if err != nil {
			return err
		}

		f, err := os.Open(input.path)
		if err != nil {
			return err
		}
		specs, err := parseSeedList(f, params.DefaultPort())
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", input.path, err)
		}

		tables = append(tables, seedTable{
			varName: input.varName,
			comment: fmt.Sprintf("lists the fixed bootstrap peers "+
				"of the %s network.", networkNoun(input.net)),
			specs: specs,
		})
	}

	src, err := renderSeedTables(opts.Package, tables)
	if err != nil {
		return err
	}

	if opts.Out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}

	return os.WriteFile(opts.Out, src, 0644)
}

// networkNoun names a network the way the table comments refer to it.
func networkNoun(net netparams.NetworkID) string {
	if net == netparams.TestNet {
		return "test"
	}

	return "main"
}
