package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/tacogips/pfegen/internal/config"
	"github.com/tacogips/pfegen/internal/debug"
)

// Runner runs one external command in a working directory.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner writing to the process stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run runs name with args in dir.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// PostGenerateOptions contains options for the post-generation step.
type PostGenerateOptions struct {
	// Dir is the generated element directory.
	Dir string
	// Runner runs the commands. Nil uses NewExecRunner().
	Runner Runner
	// Install holds the install and build commands.
	Install config.InstallConfig
}

// PostGenerateResult lists the commands that ran.
type PostGenerateResult struct {
	Commands []string
}

// PostGenerate installs dependencies and builds the new element. Both
// commands run in Dir; an empty build command is skipped.
func PostGenerate(ctx context.Context, opts PostGenerateOptions) (*PostGenerateResult, error) {
	debug.DebugSection("[app] PostGenerate start")
	debug.DebugValue("[app] Dir", opts.Dir)
	debug.DebugJSON("[app] Install", opts.Install)

	result := &PostGenerateResult{}
	if opts.Install.Skip {
		debug.Debug("[app] PostGenerate skipped by configuration")
		return result, nil
	}

	runner := opts.Runner
	if runner == nil {
		runner = NewExecRunner()
	}

	for _, command := range []string{opts.Install.Command, opts.Install.Build} {
		words, err := shellquote.Split(command)
		if err != nil {
			return result, NewAppError(PostGenerateFailed, fmt.Sprintf("invalid command %q", command), err)
		}
		if len(words) == 0 {
			continue
		}

		debug.Debug("[app] Running %q in %s", command, opts.Dir)
		if err := runner.Run(ctx, opts.Dir, words[0], words[1:]...); err != nil {
			return result, NewAppError(PostGenerateFailed, fmt.Sprintf("%s failed", command), err)
		}
		result.Commands = append(result.Commands, command)
	}

	return result, nil
}
