package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/chrisuehlinger/domtoggle/dom"
	"github.com/chrisuehlinger/domtoggle/js"
	"github.com/chrisuehlinger/domtoggle/scenario"
)

type options struct {
	Input    string   `short:"i" long:"input" env:"DOMTOGGLE_INPUT" required:"true" description:"HTML file to load"`
	Scenario string   `short:"s" long:"scenario" env:"DOMTOGGLE_SCENARIO" description:"YAML scenario to run"`
	Display  []string `long:"display" env:"DOMTOGGLE_DISPLAY" env-delim:"," description:"selector to toggle display of (repeatable)"`
	Checked  []string `long:"checked" env:"DOMTOGGLE_CHECKED" env-delim:"," description:"selector to toggle checked state of (repeatable)"`
	Scripts  bool     `long:"scripts" env:"DOMTOGGLE_SCRIPTS" description:"run the page's inline scripts first"`
	Output   string   `short:"o" long:"output" env:"DOMTOGGLE_OUTPUT" description:"output file, stdout if empty"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		fmt.Fprintf(os.Stderr, "domtoggle %s\n", revision)
		os.Exit(0)
	}

	setupLogs(opts.Debug)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

// run loads the page, applies the scenario and the ad-hoc toggles and writes
// the resulting document to opts.Output, or to stdout when it is empty.
func run(ctx context.Context, opts options, stdout io.Writer) error {
	f, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	doc, err := dom.ParseHTMLReader(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.Input, err)
	}
	log.Printf("[DEBUG] loaded %s", opts.Input)

	exec := js.NewScriptExecutor(js.NewRuntime(log.Default()))
	exec.SetupDocument(doc)
	if opts.Scripts {
		errs := exec.ExecuteScripts(doc)
		log.Printf("[INFO] executed page scripts, %d error(s)", len(errs))
	}

	sc, err := buildScenario(opts)
	if err != nil {
		return err
	}
	if len(sc.Steps) > 0 {
		if err := scenario.NewRunner(exec, log.Default()).Run(ctx, doc, sc); err != nil {
			return fmt.Errorf("scenario %q failed: %w", sc.Name, err)
		}
	}

	doc.ReflectFormState()
	out := stdout
	if opts.Output != "" {
		fh, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer fh.Close()
		out = fh
	}
	if _, err := io.WriteString(out, doc.OuterHTML()+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// buildScenario combines the scenario file with the ad-hoc toggles. They run
// after the file's steps: every --display selector first, then every
// --checked selector, each group in the order given.
func buildScenario(opts options) (scenario.Scenario, error) {
	sc := scenario.Scenario{Name: "cli"}
	if opts.Scenario != "" {
		loaded, err := scenario.Load(opts.Scenario)
		if err != nil {
			return scenario.Scenario{}, err
		}
		sc = loaded
	}
	for _, sel := range opts.Display {
		sc.Steps = append(sc.Steps, scenario.Step{Op: scenario.OpDisplay, Selector: sel})
	}
	for _, sel := range opts.Checked {
		sc.Steps = append(sc.Steps, scenario.Step{Op: scenario.OpChecked, Selector: sel})
	}
	return sc, nil
}

func setupLogs(debug bool) {
	log.Setup(log.Msec, log.Out(os.Stderr), log.Err(os.Stderr))
	if debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile, log.Out(os.Stderr), log.Err(os.Stderr))
	}
}
