package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"

	"github.com/rprtr258/enhancer/internal/logger"
	enhancer "github.com/rprtr258/enhancer/pkg"
	"github.com/rprtr258/enhancer/pkg/cvdenoise"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var operationUsage = map[enhancer.Kind]string{
	enhancer.KindBrightness:      "scale brightness by a level",
	enhancer.KindGrayscale:       "convert to grayscale",
	enhancer.KindGaussianNoise:   "add gaussian noise",
	enhancer.KindSaltPepper:      "add salt and pepper noise",
	enhancer.KindEdges:           "detect edges with the Sobel operator",
	enhancer.KindSharpen:         "sharpen with an unsharp mask",
	enhancer.KindChannels:        "reorder or isolate color channels",
	enhancer.KindInvert:          "invert colors",
	enhancer.KindGaussianDenoise: "remove noise with gaussian smoothing",
	enhancer.KindMedianDenoise:   "remove noise with a median filter",
	enhancer.KindKernel:          "apply a preset convolution kernel",
}

// resultFilename names the output of a single image command.
func resultFilename(input, outDir, stem string) string {
	if outDir != "" {
		return filepath.Join(outDir, stem+".png")
	}
	return fmt.Sprintf("%s.%s.png", input, stem)
}

// batchFilename names the output for one of many inputs.
func batchFilename(outDir, input, stem string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+"_"+stem+".png")
}

// parseParams reads key=value pairs.
func parseParams(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: parameter %q is not key=value", enhancer.ErrInvalidParameter, pair)
		}
		params.Set(key, value)
	}
	return params, nil
}

func withSeed(c *cli.Context, params url.Values) url.Values {
	if c.IsSet("seed") {
		params.Set("seed", strconv.FormatInt(c.Int64("seed"), 10))
	}
	return params
}

func inputImage(c *cli.Context) (string, *enhancer.Image, error) {
	input := c.String("input")
	if input == "" {
		return "", nil, errors.New("input image is not provided, use -i")
	}
	im, err := enhancer.LoadImageFile(input)
	if err != nil {
		return "", nil, err
	}
	return input, im, nil
}

// apply runs op on the input image, saves the result and an optional
// comparison sheet and prints the result file name.
func apply(c *cli.Context, op enhancer.Applier) error {
	input, im, err := inputImage(c)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := op.Apply(im)
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = resultFilename(input, "", op.Stem())
	}
	if err := enhancer.SaveImageFile(res.ToStd(), output); err != nil {
		return err
	}

	if compare := c.String("compare"); compare != "" {
		sheet, err := enhancer.Comparison(im, res, op.Title())
		if err != nil {
			return err
		}
		if err := enhancer.SaveImageFile(sheet, compare); err != nil {
			return err
		}
	}

	log.Info().
		Str("op", op.Title()).
		Str("input", input).
		Str("output", output).
		Dur("took", time.Since(start)).
		Msg("image processed")
	fmt.Fprintln(c.App.Writer, output)
	return nil
}

func operationCommand(kind enhancer.Kind) *cli.Command {
	params := enhancer.Parameters(kind)
	flags := make([]cli.Flag, 0, len(params))
	for _, p := range params {
		flags = append(flags, &cli.StringFlag{
			Name:        p.Name,
			Usage:       p.Usage,
			DefaultText: p.Default,
		})
	}
	return &cli.Command{
		Name:  string(kind),
		Usage: operationUsage[kind],
		Flags: flags,
		Action: func(c *cli.Context) error {
			values := url.Values{}
			for _, p := range params {
				if c.IsSet(p.Name) {
					values.Set(p.Name, c.String(p.Name))
				}
			}
			op, err := enhancer.ParseOperation(kind, withSeed(c, values))
			if err != nil {
				return err
			}
			return apply(c, op)
		},
	}
}

// saveLevels writes every brightness level concurrently and returns the
// file names in level order.
func saveLevels(levels []enhancer.LeveledImage, filename func(stem string) string, workers int) ([]string, error) {
	names := make([]string, len(levels))
	p := pool.New().WithErrors().WithMaxGoroutines(max(workers, 1))
	for i, level := range levels {
		p.Go(func() error {
			name := filename(enhancer.BrightnessOp{Level: level.Level}.Stem())
			if err := enhancer.SaveImageFile(level.Image.ToStd(), name); err != nil {
				return fmt.Errorf("save level %+d: %w", level.Level, err)
			}
			names[i] = name
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

func workersFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "workers",
		Usage: "number of images processed at once",
		Value: runtime.NumCPU(),
	}
}

func brightnessAllCommand() *cli.Command {
	return &cli.Command{
		Name:  "brightness-all",
		Usage: "save the image at every brightness level",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Usage: "directory for results, next to the input if empty"},
			workersFlag(),
		},
		Action: func(c *cli.Context) error {
			input, im, err := inputImage(c)
			if err != nil {
				return err
			}
			levels, err := enhancer.BrightnessAll(im)
			if err != nil {
				return err
			}
			outDir := c.String("out-dir")
			names, err := saveLevels(levels, func(stem string) string {
				return resultFilename(input, outDir, stem)
			}, c.Int("workers"))
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

func removeNoiseCommand() *cli.Command {
	return &cli.Command{
		Name:  "remove-noise",
		Usage: "remove noise with an OpenCV filter",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Usage: "filter: " + enhancer.Join(cvdenoise.Methods), Value: string(cvdenoise.Median)},
			&cli.IntFlag{Name: "ksize", Usage: "median and gaussian kernel size", Value: cvdenoise.Defaults.KernelSize},
			&cli.Float64Flag{Name: "sigma", Usage: "gaussian sigma, derived from ksize if 0", Value: cvdenoise.Defaults.Sigma},
			&cli.IntFlag{Name: "diameter", Usage: "bilateral pixel neighbourhood", Value: cvdenoise.Defaults.Diameter},
			&cli.Float64Flag{Name: "sigma-color", Usage: "bilateral color sigma", Value: cvdenoise.Defaults.SigmaColor},
			&cli.Float64Flag{Name: "sigma-space", Usage: "bilateral space sigma", Value: cvdenoise.Defaults.SigmaSpace},
		},
		Action: func(c *cli.Context) error {
			op, err := cvdenoise.New(cvdenoise.Method(c.String("method")))
			if err != nil {
				return err
			}
			op.Params = cvdenoise.Params{
				KernelSize: c.Int("ksize"),
				Sigma:      c.Float64("sigma"),
				Diameter:   c.Int("diameter"),
				SigmaColor: c.Float64("sigma-color"),
				SigmaSpace: c.Float64("sigma-space"),
			}
			return apply(c, op)
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "apply one operation to many images",
		ArgsUsage: "<image>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "op", Usage: "operation: " + enhancer.Join(enhancer.Kinds), Required: true},
			&cli.StringSliceFlag{Name: "param", Aliases: []string{"p"}, Usage: "operation parameter as key=value"},
			&cli.StringFlag{Name: "out-dir", Usage: "directory for results", Value: "out"},
			workersFlag(),
		},
		Action: func(c *cli.Context) error {
			params, err := parseParams(c.StringSlice("param"))
			if err != nil {
				return err
			}
			op, err := enhancer.ParseOperation(enhancer.Kind(c.String("op")), withSeed(c, params))
			if err != nil {
				return err
			}
			inputs := c.Args().Slice()
			if len(inputs) == 0 {
				return errors.New("no input images given")
			}

			outDir := c.String("out-dir")
			done := make([]bool, len(inputs))
			p := pool.New().WithErrors().WithMaxGoroutines(max(c.Int("workers"), 1))
			for i, input := range inputs {
				p.Go(func() error {
					output := batchFilename(outDir, input, op.Stem())
					if err := enhancer.ApplyFilter(input, output, op); err != nil {
						log.Error().Err(err).Str("input", input).Msg("batch item failed")
						return fmt.Errorf("%s: %w", input, err)
					}
					done[i] = true
					return nil
				})
			}
			err = p.Wait()
			for i, input := range inputs {
				if done[i] {
					fmt.Fprintln(c.App.Writer, batchFilename(outDir, input, op.Stem()))
				}
			}
			return err
		},
	}
}

func newApp() *cli.App {
	commands := make([]*cli.Command, 0, len(enhancer.Kinds)+4)
	for _, kind := range enhancer.Kinds {
		commands = append(commands, operationCommand(kind))
	}
	commands = append(commands,
		brightnessAllCommand(),
		removeNoiseCommand(),
		batchCommand(),
		menuCommand(),
	)

	return &cli.App{
		Name:  "enhancer",
		Usage: "image enhancement filters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "source image"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "result image, <input>.<operation>.png if empty"},
			&cli.StringFlag{Name: "compare", Usage: "also save a side by side comparison to this file"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed for noise, clock based if unset"},
			&cli.StringFlag{Name: "log-level", Usage: "log level", Value: "info", EnvVars: []string{"ENHANCER_LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			l, err := logger.New(c.App.ErrWriter, c.String("log-level"), true)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("enhancer failed")
		os.Exit(1)
	}
}
