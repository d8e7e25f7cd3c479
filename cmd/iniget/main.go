package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	config "github.com/linxlib/iniconf"
	"github.com/linxlib/iniconf/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("iniget", "Read values from INI-style configuration files")
	app.ErrorWriter(stderr)
	app.UsageWriter(stderr)
	app.Terminate(nil)

	files := app.Flag("file", "Candidate configuration file, tried in order").Short('f').Required().Strings()
	debug := app.Flag("debug", "Log every candidate file").Bool()

	getCmd := app.Command("get", "Print the coerced value of a key")
	getSection := getCmd.Arg("section", "Section name").Required().String()
	getKey := getCmd.Arg("key", "Key name").Required().String()
	var defaultSet bool
	getDefault := getCmd.Flag("default", "Value printed when the key is not set").IsSetByUser(&defaultSet).String()

	itemsCmd := app.Command("items", "Print the raw pairs of a section")
	itemsSection := itemsCmd.Arg("section", "Section name").Required().String()

	sectionsCmd := app.Command("sections", "List the loaded sections")

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "iniget: %v\n", err)
		return 2
	}

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintf(stderr, "iniget: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	conf := config.New(&config.Option{Name: "iniget", Files: *files, Logger: logger, Silent: !*debug})
	if err := conf.Load(); err != nil {
		logger.Error("failed to load configuration", zap.Strings("files", *files), zap.Error(err))
		fmt.Fprintf(stderr, "iniget: %v\n", err)
		return 1
	}

	switch cmd {
	case getCmd.FullCommand():
		var def []config.Value
		if defaultSet {
			def = append(def, config.StringValue(*getDefault))
		}
		v, err := conf.Get(*getSection, *getKey, def...)
		if err != nil {
			fmt.Fprintf(stderr, "iniget: %v\n", err)
			return 1
		}
		if v.IsNone() {
			fmt.Fprintf(stderr, "iniget: [%s] %s is not set\n", *getSection, *getKey)
			return 1
		}
		printValue(stdout, v)
	case itemsCmd.FullCommand():
		items, err := conf.Items(*itemsSection)
		if err != nil {
			fmt.Fprintf(stderr, "iniget: %v\n", err)
			return 1
		}
		for _, item := range items {
			fmt.Fprintf(stdout, "%s = %s\n", item.Key, item.Value)
		}
	case sectionsCmd.FullCommand():
		for _, name := range conf.Sections() {
			fmt.Fprintln(stdout, name)
		}
	}
	return 0
}

// printValue writes scalars on one line and lists one element per line.
func printValue(w io.Writer, v config.Value) {
	if list, err := v.List(); err == nil {
		for _, item := range list {
			fmt.Fprintln(w, item.String())
		}
		return
	}
	fmt.Fprintln(w, v.String())
}
