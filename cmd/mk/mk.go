package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rprtr258/mk"
	md "github.com/rprtr258/mk/contrib/markdown"
	"github.com/urfave/cli/v2"

	"github.com/rprtr258/enhancer/internal/logger"
)

const imgsDir = "img/static"

// examples maps an example image name to the enhancer arguments producing it.
var examples = map[string][]string{
	"brightness_-2":      {"brightness", "--level", "-2"},
	"brightness_+2":      {"brightness", "--level", "2"},
	"grayscale":          {"grayscale"},
	"gaussian_noise":     {"--seed", "1", "gaussian-noise", "--intensity", "0.3"},
	"salt_pepper":        {"--seed", "1", "salt-pepper", "--intensity", "0.1"},
	"denoise_gaussian":   {"denoise-gaussian", "--sigma", "2"},
	"denoise_median":     {"denoise-median", "--size", "5"},
	"remove_noise":       {"remove-noise", "--method", "bilateral"},
	"inverted":           {"invert"},
	"edges_both":         {"edges"},
	"edges_horizontal":   {"edges", "--direction", "horizontal", "--sensitivity", "1.5"},
	"sharpened":          {"sharpen", "--amount", "2"},
	"channels_bgr":       {"channels", "--mode", "bgr"},
	"channels_g":         {"channels", "--mode", "g"},
	"kernel_emboss":      {"kernel", "--name", "emboss"},
	"kernel_edgeenhance": {"kernel", "--name", "edgeenhance"},
}

func main() {
	log, _ := logger.New(os.Stderr, "info", true)
	if err := (&cli.App{
		Name:  "mk",
		Usage: "commands runner",
		Commands: []*cli.Command{
			{
				Name:  "imgs",
				Usage: "update example imgs from orig.png",
				Action: func(*cli.Context) error {
					enhancerCmd := mk.ShellAlias("go", "run", "./cmd/enhancer", "-i", filepath.Join(imgsDir, "orig.png"))

					for destination, args := range examples {
						imageFilename, _ := mk.Must2(enhancerCmd(args...))
						mk.Must0(os.Rename(strings.TrimSpace(imageFilename), filepath.Join(imgsDir, destination+".png")))
						log.Info().Str("example", destination).Msg("rendered")
					}

					return nil
				},
			},
			{
				Name:  "readme",
				Usage: "compile readme file",
				Action: func(*cli.Context) error {
					b := &bytes.Buffer{}
					md.H1(b, "enhancer - image enhancement filters")

					md.H2(b, "Install")
					md.Code(b, "bash", "go install github.com/rprtr258/enhancer/cmd/enhancer@latest\ngo install github.com/rprtr258/enhancer/cmd/enhancerweb@latest")

					md.H2(b, "Usage")
					usage, _ := mk.Must2(mk.ShellCmd("go", "run", "./cmd/enhancer", "--help"))
					md.Code(b, "php", usage)

					exampleFiles, err := fs.Glob(os.DirFS(imgsDir), "*.png")
					if err != nil {
						return err
					}

					rows := make([][]string, 0, 2*(len(exampleFiles)/3+1))
					for i := 0; i < len(exampleFiles); i += 3 {
						pics := []string{}
						titles := []string{}
						for j := i; j < len(exampleFiles) && j < i+3; j++ {
							pics = append(pics, fmt.Sprintf("![](./%s/%s)", imgsDir, exampleFiles[j]))
							titles = append(titles, strings.TrimSuffix(exampleFiles[j], ".png"))
						}
						rows = append(rows, pics, titles)
					}

					md.H2(b, "Examples")
					md.Table(b, []string{"", "", ""}, rows)

					mk.Must0(os.WriteFile("README.md", b.Bytes(), 0o644))
					log.Info().Int("examples", len(exampleFiles)).Msg("README.md written")

					return nil
				},
			},
		},
	}).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("mk failed")
	}
}
