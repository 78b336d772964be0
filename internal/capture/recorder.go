package capture

import (
	"bufio"
	"image"
	"os"
	"sync"
	"sync/atomic"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/render"
	"linux-wallpaperparticles/internal/utils"
)

const queueSize = 8

// Recorder wraps a surface and streams a copy of every Nth presented frame
// to a Writer on its own goroutine. Frames are dropped, not queued, when
// the writer falls behind.
type Recorder struct {
	render.SurfaceHandle

	every   int
	counter uint64

	frames chan Frame
	done   chan struct{}
	err    error

	written atomic.Uint64
	dropped atomic.Uint64

	closeOnce sync.Once
	closeFn   func() error
}

type RecorderOptions struct {
	// Every records one frame out of Every; values below 1 record all.
	Every int
}

// NewRecorder records frames presented on surface into w.
func NewRecorder(surface render.SurfaceHandle, w *Writer, opts RecorderOptions) *Recorder {
	if opts.Every < 1 {
		opts.Every = 1
	}
	r := &Recorder{
		SurfaceHandle: surface,
		every:         opts.Every,
		frames:        make(chan Frame, queueSize),
		done:          make(chan struct{}),
	}
	go r.writeLoop(w)
	return r
}

// CreateRecorder records into a new file at path.
func CreateRecorder(surface render.SurfaceHandle, path string, opts RecorderOptions) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriter(f)
	w, err := NewWriter(bw)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := NewRecorder(surface, w, opts)
	r.closeFn = func() error {
		if err := bw.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	utils.Info("Recording frames to %s", path)
	return r, nil
}

func (r *Recorder) writeLoop(w *Writer) {
	defer close(r.done)
	for f := range r.frames {
		if r.err != nil {
			continue
		}
		if err := w.WriteFrame(f); err != nil {
			utils.Error("Capture stopped: %v", err)
			r.err = err
			continue
		}
		r.written.Add(1)
	}
}

func (r *Recorder) Present(c engine2D.Canvas) error {
	r.counter++
	if (r.counter-1)%uint64(r.every) == 0 {
		if src, ok := c.(interface{ Image() *image.RGBA }); ok {
			r.enqueue(r.counter, src.Image())
		}
	}
	return r.SurfaceHandle.Present(c)
}

func (r *Recorder) enqueue(seq uint64, img *image.RGBA) {
	cp := &image.RGBA{
		Pix:    append([]byte(nil), img.Pix...),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	select {
	case r.frames <- Frame{Seq: seq, Image: cp}:
	default:
		r.dropped.Add(1)
	}
}

// Resize forwards to the wrapped surface when it is resizable.
func (r *Recorder) Resize(width, height int) {
	if rs, ok := r.SurfaceHandle.(render.Resizer); ok {
		rs.Resize(width, height)
	}
}

// Close flushes queued frames. The render loop must be stopped first.
func (r *Recorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.frames)
		<-r.done
		err = r.err
		if r.closeFn != nil {
			if cerr := r.closeFn(); err == nil {
				err = cerr
			}
		}
		utils.Info("Capture finished: %d frames written, %d dropped", r.written.Load(), r.dropped.Load())
	})
	return err
}

func (r *Recorder) Written() uint64 { return r.written.Load() }
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }
