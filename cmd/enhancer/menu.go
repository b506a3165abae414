package main

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	enhancer "github.com/rprtr258/enhancer/pkg"
)

type menu struct {
	in     *bufio.Scanner
	out    io.Writer
	outDir string

	image     *enhancer.Image
	imagePath string
}

type menuItem struct {
	label string
	run   func(m *menu)
}

func applyItem(label string, kind enhancer.Kind) menuItem {
	return menuItem{label, func(m *menu) { m.apply(kind) }}
}

var menuItems = []menuItem{
	{"Load a new image", func(m *menu) { m.load() }},
	applyItem("Apply brightness filter", enhancer.KindBrightness),
	{"Save all brightness levels", (*menu).saveAllLevels},
	applyItem("Apply grayscale filter", enhancer.KindGrayscale),
	applyItem("Add gaussian noise", enhancer.KindGaussianNoise),
	applyItem("Add salt and pepper noise", enhancer.KindSaltPepper),
	applyItem("Remove noise (gaussian)", enhancer.KindGaussianDenoise),
	applyItem("Remove noise (median)", enhancer.KindMedianDenoise),
	applyItem("Invert colors", enhancer.KindInvert),
	applyItem("Detect edges", enhancer.KindEdges),
	applyItem("Sharpen", enhancer.KindSharpen),
	applyItem("Swap color channels", enhancer.KindChannels),
	applyItem("Apply preset kernel", enhancer.KindKernel),
}

// prompt prints text and reads one trimmed line, ok is false on end of input.
func (m *menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) load() bool {
	for {
		path, ok := m.prompt("Path to input image\n(example: images/delft.jpg) : ")
		if !ok {
			return false
		}
		im, err := enhancer.LoadImageFile(path)
		if err == nil {
			m.image, m.imagePath = im, path
			fmt.Fprintf(m.out, "Image loaded successfully: %s\n", path)
			return true
		}
		fmt.Fprintf(m.out, "Error: %v\n", err)
		if retry, _ := m.prompt("Try again? (y/n): "); strings.ToLower(retry) != "y" {
			return false
		}
	}
}

// save writes the result as jpg and a comparison sheet next to it.
func (m *menu) save(res *enhancer.Image, op enhancer.Applier) {
	output := filepath.Join(m.outDir, op.Stem()+".jpg")
	if err := enhancer.SaveImageFile(res.ToStd(), output); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Saved to %s\n", output)

	sheet, err := enhancer.Comparison(m.image, res, op.Title())
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	comparison := filepath.Join(m.outDir, op.Stem()+"_comparison.png")
	if err := enhancer.SaveImageFile(sheet, comparison); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Comparison saved to %s\n", comparison)
}

func (m *menu) apply(kind enhancer.Kind) {
	params := url.Values{}
	for _, p := range enhancer.Parameters(kind) {
		value, ok := m.prompt(fmt.Sprintf("Enter %s (default %s): ", p.Usage, p.Default))
		if !ok {
			return
		}
		if value != "" {
			params.Set(p.Name, value)
		}
	}

	op, err := enhancer.ParseOperation(kind, params)
	if err != nil {
		fmt.Fprintf(m.out, "Invalid input: %v\n", err)
		return
	}
	res, err := op.Apply(m.image)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	log.Info().Str("op", op.Title()).Str("input", m.imagePath).Msg("image processed")
	m.save(res, op)
}

func (m *menu) saveAllLevels() {
	levels, err := enhancer.BrightnessAll(m.image)
	if err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	if _, err := saveLevels(levels, func(stem string) string {
		return filepath.Join(m.outDir, stem+".jpg")
	}, len(levels)); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "All brightness levels saved to %s/\n", m.outDir)
}

func (m *menu) showMainMenu() (string, bool) {
	fmt.Fprintln(m.out, "\n===== Image Enhancer =====")
	for i, item := range menuItems {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintln(m.out, "0. Exit")
	return m.prompt("Choose an option: ")
}

func (m *menu) run() {
	fmt.Fprintln(m.out, "Welcome to Image Enhancer!")
	if m.image == nil && !m.load() {
		fmt.Fprintln(m.out, "No image loaded. Exiting...")
		return
	}

	for {
		choice, ok := m.showMainMenu()
		if !ok || choice == "0" {
			fmt.Fprintln(m.out, "Exiting...")
			return
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(menuItems) {
			fmt.Fprintln(m.out, "Invalid option.")
			continue
		}
		menuItems[n-1].run(m)
	}
}

func menuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "interactive text menu",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Usage: "directory for results", Value: "images"},
		},
		Action: func(c *cli.Context) error {
			m := &menu{
				in:     bufio.NewScanner(c.App.Reader),
				out:    c.App.Writer,
				outDir: c.String("out-dir"),
			}
			if input := c.String("input"); input != "" {
				im, err := enhancer.LoadImageFile(input)
				if err != nil {
					return err
				}
				m.image, m.imagePath = im, input
			}
			m.run()
			return nil
		},
	}
}
