package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/model"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to defaults file",
		Value:   config.DefaultsPath(),
	}
}

// outputFlags are shared by every generating command.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of passwords to generate",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:  "copy",
			Usage: "Copy the last generated password to the clipboard",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output one JSON object per password",
		},
	}
}

func randomCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "random",
		Aliases: []string{"r"},
		Usage:   "Generate a random character password",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "length", Aliases: []string{"l"}, Usage: "Password length"},
			&cli.BoolFlag{Name: "uppercase", Aliases: []string{"U"}, Usage: "Include A-Z"},
			&cli.BoolFlag{Name: "lowercase", Aliases: []string{"L"}, Usage: "Include a-z"},
			&cli.BoolFlag{Name: "numbers", Aliases: []string{"D"}, Usage: "Include 0-9"},
			&cli.BoolFlag{Name: "symbols", Aliases: []string{"S"}, Usage: "Include punctuation"},
		}, outputFlags()...),
		Action: r.Random,
	}
}

func passphraseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "passphrase",
		Aliases: []string{"p", "memorable"},
		Usage:   "Generate a passphrase from dictionary words",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "words", Aliases: []string{"w"}, Usage: "Number of words"},
			&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Usage: "Separator between words (may be empty)"},
			&cli.BoolFlag{Name: "capitalize", Usage: "Capitalize every word"},
			&cli.BoolFlag{Name: "number", Usage: "Append a two-digit number"},
		}, outputFlags()...),
		Action: r.Passphrase,
	}
}

func pinCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pin",
		Usage: "Generate a numeric PIN",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "length", Aliases: []string{"l"}, Usage: "PIN length"},
		}, outputFlags()...),
		Action: r.PIN,
	}
}

func strengthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "strength",
		Usage: "Score a password (reads stdin when no argument is given)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "password"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Strength,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the defaults file",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example defaults file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective defaults as JSON",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigShow,
			},
		},
	}
}

// Random handles `passgen random`.
func (r *Runner) Random(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDefaults(cmd)
	if err != nil {
		return err
	}

	return r.generate(cmd, model.GenerateRequest{
		Mode:      model.ModeRandom,
		Length:    intFlag(cmd, "length", d.Random.Length),
		Uppercase: boolFlag(cmd, "uppercase", d.Random.Uppercase),
		Lowercase: boolFlag(cmd, "lowercase", d.Random.Lowercase),
		Numbers:   boolFlag(cmd, "numbers", d.Random.Numbers),
		Symbols:   boolFlag(cmd, "symbols", d.Random.Symbols),
	})
}

// Passphrase handles `passgen passphrase`.
func (r *Runner) Passphrase(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDefaults(cmd)
	if err != nil {
		return err
	}

	separator := d.Passphrase.Separator
	if cmd.IsSet("separator") {
		separator = cmd.String("separator")
	}

	return r.generate(cmd, model.GenerateRequest{
		Mode:          model.ModePassphrase,
		WordCount:     intFlag(cmd, "words", d.Passphrase.WordCount),
		Separator:     &separator,
		Capitalize:    boolFlag(cmd, "capitalize", d.Passphrase.Capitalize),
		IncludeNumber: boolFlag(cmd, "number", d.Passphrase.IncludeNumber),
	})
}

// PIN handles `passgen pin`.
func (r *Runner) PIN(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDefaults(cmd)
	if err != nil {
		return err
	}

	return r.generate(cmd, model.GenerateRequest{
		Mode:   model.ModePIN,
		Length: intFlag(cmd, "length", d.PIN.Length),
	})
}

// Strength handles `passgen strength`.
func (r *Runner) Strength(ctx context.Context, cmd *cli.Command) error {
	password, err := r.readPassword(cmd)
	if err != nil {
		return err
	}

	report := r.generator.Evaluate(password)
	if cmd.Bool("json") {
		return r.writeJSON(report)
	}
	return r.writeStrength(report)
}

// ConfigInit handles `passgen config init`.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := config.WriteDefaults(path); err != nil {
		return err
	}
	r.logger.Info("wrote defaults", "path", path)
	return nil
}

// ConfigShow handles `passgen config show`.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDefaults(cmd)
	if err != nil {
		return err
	}
	return r.writeJSON(d)
}

// boolFlag returns the flag value when given on the command line, else fallback.
func boolFlag(cmd *cli.Command, name string, fallback bool) *bool {
	v := fallback
	if cmd.IsSet(name) {
		v = cmd.Bool(name)
	}
	return &v
}

// intFlag is boolFlag for ints. A zero fallback means nothing was chosen and yields nil.
func intFlag(cmd *cli.Command, name string, fallback int) *int {
	if cmd.IsSet(name) {
		v := int(cmd.Int(name))
		return &v
	}
	if fallback == 0 {
		return nil
	}
	return &fallback
}
