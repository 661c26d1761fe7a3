// Copyright 2025 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0> or the MIT license
// <LICENSE-MIT or https://opensource.org/licenses/MIT>, at your
// option. This file may not be copied, modified, or distributed
// except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

// vidscramble reads a frame container, recovers the scrambling pipeline
// embedded in the first frame whose markers it can detect, and writes the
// inverse-transformed image of that frame and every later one to a sibling
// output directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/tetrachromatic/vidscramble/internal/fiducial"
	"github.com/tetrachromatic/vidscramble/internal/framecontainer"
	"github.com/tetrachromatic/vidscramble/internal/matrix"
	"github.com/tetrachromatic/vidscramble/internal/pipeline"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const usageStr = `vidscramble reverses the scrambling pipeline embedded in a frame container.

Usage:

    vidscramble [-frames N] <container-file>

Recovered frames are written as PNG to <container-file>.out/<n>.png.
`

var framesFlag = flag.Int("frames", -1, "maximum number of frames to process (-1 for all)")

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		if errors.Is(err, errArgs) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errArgs = errors.New("vidscramble: expected exactly one container-file argument")

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()
	if flag.NArg() != 1 {
		return errArgs
	}
	containerPath := flag.Arg(0)

	f, err := os.Open(containerPath)
	if err != nil {
		return err
	}
	defer f.Close()

	reader, err := framecontainer.Open(f)
	if err != nil {
		return err
	}

	outDir := containerPath + ".out"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var p *pipeline.Pipeline
	nominalSize := 0

	for i := 0; *framesFlag < 0 || i < *framesFlag; i++ {
		stdImg, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		frame := matrix.FromStdImage(stdImg)

		if p == nil {
			p, nominalSize, err = bootstrap(frame)
			if errors.Is(err, fiducial.ErrDetection) {
				log.Printf("frame %d: %v", i, err)
				continue
			}
			if err != nil {
				return err
			}
		}

		if err := processFrame(p, frame, nominalSize, outDir, i); err != nil {
			log.Printf("frame %d: %v", i, err)
			continue
		}
	}
	return nil
}

// bootstrap detects the markers in frame, parses the embedded
// pipeline descriptor, fits the pipeline against it and synchronizes its
// timestamp, using a block-size guess derived from the frame's own width as
// the fiducial detector's nominal marker size.
func bootstrap(frame *matrix.Image) (*pipeline.Pipeline, int, error) {
	guess := frame.Width / 40
	if guess < 8 {
		guess = 8
	}

	transform, descriptor, err := pipeline.DetectAndExtract(frame, guess)
	if err != nil {
		return nil, 0, fmt.Errorf("first-frame detection: %w", err)
	}

	p, err := pipeline.ParsePipeline(descriptor)
	if err != nil {
		return nil, 0, fmt.Errorf("first-frame parse: %w", err)
	}
	probe := matrix.New(transform.OriginalWidth, transform.OriginalHeight)
	if err := p.Fit(probe); err != nil {
		return nil, 0, fmt.Errorf("first-frame fit: %w", err)
	}
	if err := p.SyncState(descriptor); err != nil {
		return nil, 0, fmt.Errorf("first-frame sync: %w", err)
	}
	return p, p.DataEmbedBlockSize * 4, nil
}

// processFrame locates the markers in frame, inverse-transforms it through
// p, and writes the recovered image as PNG.
func processFrame(p *pipeline.Pipeline, frame *matrix.Image, nominalSize int, outDir string, index int) error {
	transform, _, err := pipeline.DetectAndExtract(frame, nominalSize)
	if err != nil {
		return err
	}

	recovered, err := p.InverseTransform(frame, transform)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%d.png", index))
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, recovered.RGBA())
}
