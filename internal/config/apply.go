package config

import (
	"errors"

	"linux-wallpaperparticles/internal/engine2D/particle"
	"linux-wallpaperparticles/internal/render"
	"linux-wallpaperparticles/internal/utils"
)

// ShowEffect makes the configured effect the visible one.
func (c *Config) ShowEffect(loop *render.FrameLoop) {
	if c.Effect == EffectNone {
		loop.Show("")
		return
	}
	loop.Show(c.Effect)
}

// Apply pushes the live-tunable settings of c onto a running loop and its
// generators. Particle counts, fps, seed and scene size only take effect on
// restart; prev, when given, is used to warn about those. Render scale is
// applied by the host through SceneSize. The visible effect and the clear
// mode only follow the file when they changed there, so keyboard toggles
// survive unrelated edits.
func (c *Config) Apply(prev *Config, loop *render.FrameLoop, line *particle.LineGenerator, dust *particle.DustGenerator) error {
	if prev != nil {
		if prev.Dust.Count != c.Dust.Count || prev.Line.Count != c.Line.Count {
			utils.Warn("Particle counts changed; restart to apply")
		}
		if prev.FPS != c.FPS || prev.Seed != c.Seed ||
			prev.SceneWidth != c.SceneWidth || prev.SceneHeight != c.SceneHeight {
			utils.Warn("fps, seed and scene size changes apply on restart")
		}
	}

	var errs []error
	loop.WithSurfaceLock(func() {
		dust.SetColor(c.Dust.Color.NRGBA())
		dust.SetSpeed(c.Dust.Speed)
		dust.SetGradient(c.DustGradient())
		errs = append(errs, wrap("dust", dust.SetRadii(c.Dust.MinRadius, c.Dust.MaxRadius)))

		line.SetColors(c.Line.Color.NRGBA(), c.Line.LineColor.NRGBA())
		line.SetSpeed(c.Line.Speed)
		errs = append(errs,
			wrap("line", line.SetDistances(c.Line.MinDistance, c.Line.MaxDistance)),
			wrap("line", line.SetRadius(c.Line.Radius)),
			wrap("line", line.SetLineWidth(c.Line.LineWidth)),
		)
	})

	loop.SetBackground(c.Background.NRGBA())
	if (prev == nil || prev.ClearEachFrame != c.ClearEachFrame) && loop.ClearEachFrame() != c.ClearEachFrame {
		loop.SetClearEachFrame(c.ClearEachFrame)
	}
	if prev == nil || prev.Effect != c.Effect {
		c.ShowEffect(loop)
	}

	return errors.Join(errs...)
}
