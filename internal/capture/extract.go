package capture

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"linux-wallpaperparticles/internal/utils"
)

// maxEncoders limits concurrent PNG encoders to keep memory flat.
const maxEncoders = 4

// FramePath returns the file name a frame is extracted to.
func FramePath(outDir string, seq uint64) string {
	return filepath.Join(outDir, fmt.Sprintf("frame_%06d.png", seq))
}

// Extract decodes every frame of the capture at path into PNG files in
// outDir and returns how many were written. Decoding stops at the first bad
// frame; frames before it are still written.
func Extract(path, outDir string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := NewReader(bufio.NewReader(f))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, err
	}

	var (
		wg       sync.WaitGroup
		written  atomic.Int32
		errMu    sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, maxEncoders)

	for {
		frame, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errMu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMu.Unlock()
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(frame Frame) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := writePNG(FramePath(outDir, frame.Seq), frame); err != nil {
				utils.Error("Failed to write frame %d: %v", frame.Seq, err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			written.Add(1)
		}(frame)
	}

	wg.Wait()
	utils.Info("Extracted %d frames to %s", written.Load(), outDir)
	return int(written.Load()), firstErr
}

func writePNG(path string, frame Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, frame.Image); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
