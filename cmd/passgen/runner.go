package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

var ErrNoPassword = errors.New("no password given")

// NewLogger creates a [log.Logger] writing to w with timestamps enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "passgen"})
}

// Runner holds the dependencies of every CLI command.
type Runner struct {
	generator *service.GeneratorService
	logger    *log.Logger
	output    io.Writer
	input     io.Reader
	clipboard func(string) error
	renderer  *lipgloss.Renderer
}

// RunnerOpts configures a Runner. Nil fields get production defaults.
type RunnerOpts struct {
	Generator *service.GeneratorService
	Logger    *log.Logger
	Output    io.Writer
	Input     io.Reader
	Clipboard func(string) error
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Generator == nil {
		opts.Generator = service.NewGeneratorService()
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	return &Runner{
		generator: opts.Generator,
		logger:    opts.Logger,
		output:    opts.Output,
		input:     opts.Input,
		clipboard: opts.Clipboard,
		renderer:  lipgloss.NewRenderer(opts.Output),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		randomCommand, passphraseCommand, pinCommand, strengthCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// loadDefaults reads the defaults file named by the --config flag.
func (r *Runner) loadDefaults(cmd *cli.Command) (config.Defaults, error) {
	path := cmd.String("config")
	d, err := config.LoadDefaults(path)
	if err != nil {
		return config.Defaults{}, err
	}
	r.logger.Debug("loaded defaults", "path", path)
	return d, nil
}

// generate gates req, generates --count passwords and prints them.
// With --copy the last password goes to the clipboard.
func (r *Runner) generate(cmd *cli.Command, req model.GenerateRequest) error {
	if err := service.CanGenerate(req); err != nil {
		return err
	}

	count := max(int(cmd.Int("count")), 1)
	var last string

	for i := 0; i < count; i++ {
		resp, err := r.generator.Generate(req)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		last = resp.Password

		if cmd.Bool("json") {
			if err := r.writeJSON(resp); err != nil {
				return err
			}
			continue
		}
		if err := r.writePassword(resp); err != nil {
			return err
		}
	}

	if cmd.Bool("copy") {
		if err := r.clipboard(last); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		r.logger.Info("copied to clipboard")
	}

	return nil
}

// readPassword returns the first argument, or one line from input.
func (r *Runner) readPassword(cmd *cli.Command) (string, error) {
	if pw := cmd.StringArg("password"); pw != "" {
		return pw, nil
	}

	scanner := bufio.NewScanner(r.input)
	if scanner.Scan() {
		if pw := strings.TrimRight(scanner.Text(), "\r\n"); pw != "" {
			return pw, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return "", ErrNoPassword
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writePassword prints a password followed by its strength line.
func (r *Runner) writePassword(resp model.GenerateResponse) error {
	if err := r.writePlain("%s\n", resp.Password); err != nil {
		return err
	}
	return r.writeStrength(resp.Strength)
}

func (r *Runner) writeStrength(s model.StrengthResponse) error {
	// the renderer drops styling when output is not a terminal
	level := r.renderer.NewStyle().Foreground(lipgloss.Color(s.Color)).Bold(true).Render(s.Level)
	return r.writePlain("strength: %s (%d/100) %s\n", level, s.Score, s.Feedback)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
