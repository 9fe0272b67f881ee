// Command srw3dump decodes a raw SRW v3 payload (the compressed bitstream
// itself, not a full TIFF container — TIFF/IFD parsing is the dispatcher's
// job, not this decoder's) and writes it out as a plain PGM so the result
// can be eyeballed. This mirrors the teacher codec's main.go: a small,
// deliberately unpolished harness, not a supported CLI.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-raw/srw3/srw3"
)

func main() {
	bits := flag.Uint("bits", 12, "nominal sample precision reported by the TIFF dispatcher (12 or 14)")
	width := flag.Uint("width", 0, "raster width; 0 to trust the stream header once decoded")
	height := flag.Uint("height", 0, "raster height; 0 to trust the stream header once decoded")
	out := flag.String("o", "out.pgm", "output PGM path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: srw3dump [-bits 12|14] [-width W -height H] -o out.pgm <payload>")
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "srw3dump:", err)
		os.Exit(1)
	}

	w, h := *width, *height
	if w == 0 || h == 0 {
		w, h, err = peekDimensions(buf)
		if err != nil {
			fmt.Fprintln(os.Stderr, "srw3dump: could not determine dimensions:", err)
			os.Exit(1)
		}
	}

	img := srw3.NewRaster(int(w), int(h))
	if err := srw3.Decode(buf, 0, uint32(*bits), img); err != nil {
		fmt.Fprintln(os.Stderr, "srw3dump: decode failed:", err)
		os.Exit(1)
	}

	if err := writePGM(*out, img, *bits); err != nil {
		fmt.Fprintln(os.Stderr, "srw3dump:", err)
		os.Exit(1)
	}
}

// peekDimensions decodes just enough of the header to report width and
// height, for callers that don't already know them. It re-decodes the
// header a second time inside srw3.Decode; that's fine for a debug
// harness that runs once per invocation.
func peekDimensions(buf []byte) (width, height uint, err error) {
	probe := srw3.NewRaster(1, 1)
	err = srw3.Decode(buf, 0, 12, probe)
	var bad *srw3.BadDimensionsError
	if err == nil {
		return 0, 0, fmt.Errorf("stream declares 1x1, which srw3dump can't happen upon by chance")
	}
	if errors.As(err, &bad) {
		return uint(bad.Width), uint(bad.Height), nil
	}
	return 0, 0, err
}

func writePGM(path string, img *srw3.Raster, bits uint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	maxVal := (1 << bits) - 1
	fmt.Fprintf(bw, "P2\n%d %d\n%d\n", img.Width(), img.Height(), maxVal)
	for row := 0; row < img.Height(); row++ {
		for i, v := range img.RowMut(row) {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", v)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
