package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/texcat/texcat"
)

var (
	verbose    bool
	configPath string
	noImages   bool
	colorFlag  string
	dpiFlag    int
)

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
	rootCmd.Flags().BoolVar(&noImages, "no-images", false, "Render math as text even on capable terminals")
	rootCmd.Flags().StringVar(&colorFlag, "color", "", "Math foreground color, #rrggbb")
	rootCmd.Flags().IntVar(&dpiFlag, "dpi", 0, "Rasterization DPI for inline and block math")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "texcat [file or text]",
	Short: "Display text with embedded LaTeX math in your terminal",
	Long: `Display text with embedded LaTeX math in your terminal.

Inline math goes between $...$ and display math between $$...$$. On
terminals with kitty graphics support the equations are rendered as
images placed in the text flow; elsewhere they degrade to readable text.

Input comes from stdin when piped, otherwise from the argument, which is
read as a file when one exists at that path and treated as literal text
when not.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		input, err := readInput(args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if colorFlag != "" {
			cfg.Color = colorFlag
		}
		if dpiFlag > 0 {
			cfg.Inline.DPI = dpiFlag
			cfg.Block.DPI = dpiFlag
		}

		geo := texcat.DetectGeometry()
		log.Debugf("geometry: %.1fx%.1fpx cells, %dx%d grid",
			geo.CellWidth, geo.CellHeight, geo.Cols, geo.Rows)

		graphics := !noImages && texcat.KittySupported()
		log.Debugf("graphics placement: %t", graphics)

		builtin, err := texcat.NewMathText()
		if err != nil {
			return fmt.Errorf("initializing built-in renderer: %w", err)
		}
		prov := &texcat.Chain{
			Builtin:  builtin,
			External: texcat.NewLaTeX(cfg.ExternalTimeout()),
		}

		r := texcat.New(os.Stdout, geo, cfg, prov, texcat.Options{Graphics: graphics})
		return r.Render(context.Background(), input)
	},
}

// loadConfig reads the file from --config, or the default location when it
// exists. No file at all is fine; built-in defaults apply.
func loadConfig() (texcat.Config, error) {
	path := configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil {
			if _, serr := os.Stat(p); serr == nil {
				path = p
			}
		}
	}
	return texcat.LoadConfig(path)
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texcat", "config.toml"), nil
}

func readInput(args []string) (string, error) {
	piped := !term.IsTerminal(int(os.Stdin.Fd()))
	return resolveInput(args, os.Stdin, piped)
}

// resolveInput picks the input text: piped stdin wins, then the argument,
// read as a file when a file exists at that path and taken literally when
// not.
func resolveInput(args []string, stdin io.Reader, piped bool) (string, error) {
	if piped {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("no input: pipe text on stdin or pass a file or string")
	}

	if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	return args[0], nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
