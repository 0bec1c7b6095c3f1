package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/dekarrin/grammarc/internal/config"
	"github.com/dekarrin/grammarc/internal/grammar"
	"github.com/dekarrin/grammarc/internal/issues"
	"github.com/dekarrin/grammarc/internal/pipeline"
)

// consoleOutputWidth is the column count diagnostic lines are wrapped to
// before being handed to pterm, matching the terminal-friendly width
// engine.go's own console output used.
const consoleOutputWidth = 80

// compileRun threads one issues.Manager through a single grammarc
// invocation, the CLI-side counterpart to the "one Manager per pipeline
// orchestrator call, never a package-level singleton" discipline
// internal/pipeline.Compile follows. id stamps the run's log line so
// multi-grammar (import-chain) runs in long log output stay attributable to
// one invocation; the console diagnostic lines themselves do not carry it.
type compileRun struct {
	id     string
	cfg    config.Config
	mgr    *issues.Manager
	result *pipeline.Result
}

func newCompileRun(cfg config.Config) *compileRun {
	mgr := issues.NewManager()
	mgr.WarningsAreErrors(cfg.WarningsAreErrors)

	format := cfg.Format()
	mgr.AddListener(issues.ListenerFunc(func(iss *issues.Issue) {
		line := rosed.Edit(format.String(iss)).Wrap(consoleOutputWidth).String()
		switch iss.Severity {
		case issues.Fatal, issues.Error, issues.ErrorOneOff:
			pterm.Error.Println(line)
		case issues.Warning, issues.WarningOneOff:
			pterm.Warning.Println(line)
		default:
			pterm.Info.Println(line)
		}
	}))

	return &compileRun{id: uuid.NewString(), cfg: cfg, mgr: mgr}
}

func (cr *compileRun) compile(g *grammar.Grammar) *pipeline.Result {
	log.Printf("INFO run %s: compiling %s (%s)", cr.id, g.FileName, g.Type)
	cr.result = pipeline.Compile(g, nil, cr.mgr)
	return cr.result
}

func readGrammarFile(path string) (*grammar.Grammar, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return loadGrammar(string(src), path)
}

// writeArtifact writes contents to path, or to stdout if path is empty, the
// same "empty output path means stdout" convention nihei9-vartan's own
// compile subcommand uses for its compiled-grammar output.
func writeArtifact(path, contents string) error {
	if path == "" {
		fmt.Print(contents)
		return nil
	}
	return os.WriteFile(path, []byte(contents), 0644)
}
