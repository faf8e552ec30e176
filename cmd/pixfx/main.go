// Command pixfx applies the sepia, color controls and twirl adjustments to an image file.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
	"github.com/soypat/pixfx/pipeline"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

func main() {
	var (
		input      = flag.String("in", "", "input image (png, jpeg, gif, bmp, webp)")
		output     = flag.String("out", "out.png", "output PNG file")
		sepia      = flag.Float64("sepia", 0, "sepia tone intensity 0..1")
		saturation = flag.Float64("saturation", 0, "saturation -20..20, 0 leaves saturation untouched")
		brightness = flag.Float64("brightness", 0, "brightness offset 0..1")
		contrast   = flag.Float64("contrast", 0, "contrast -5..5, 0 leaves contrast untouched")
		twirl      = flag.Float64("twirl", 0, "twirl distortion radius 0..500 pixels")
		bilinear   = flag.Bool("bilinear", false, "use bilinear sampling for the twirl")
		float      = flag.Bool("float", false, "process in 32-bit float pixels")
		verbose    = flag.Bool("v", false, "log every pipeline stage")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()
	pipeline.SetLogger(log)

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	adj := pipeline.Adjustments{
		SepiaIntensity: float32(*sepia),
		Saturation:     float32(*saturation),
		Brightness:     float32(*brightness),
		Contrast:       float32(*contrast),
		TwirlRadius:    float32(*twirl),
	}
	format := pixfx.FormatRGBA8
	if *float {
		format = pixfx.FormatRGBAF32
	}
	if err := run(*input, *output, adj, format, *bilinear); err != nil {
		log.Fatal().Err(err).Msg("pixfx failed")
	}
	log.Info().Str("out", *output).Msg("image written")
}

func run(inPath, outPath string, adj pipeline.Adjustments, format pixfx.Format, bilinear bool) error {
	src, err := decode(inPath)
	if err != nil {
		return err
	}
	buf, err := pixfx.FromImage(src, format)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inPath, err)
	}
	chain := adj.Chain()
	if bilinear {
		twirl := filters.NewTwirl(adj.TwirlRadius)
		twirl.Sampling = filters.SampleBilinear
		chain, err = chain.Remove(chain.Len() - 1)
		if err != nil {
			return err
		}
		chain = chain.Append(twirl)
	}
	start := time.Now()
	result, err := pipeline.Render(buf, chain)
	if err != nil {
		return err
	}
	log := pipeline.Logger()
	log.Info().
		Int("width", result.Width()).Int("height", result.Height()).
		Stringer("format", result.Format()).Dur("elapsed", time.Since(start)).
		Msg("rendered")
	return encode(outPath, result.Image())
}

func decode(path string) (image.Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, _, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func encode(path string, img image.Image) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(fp, img); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
