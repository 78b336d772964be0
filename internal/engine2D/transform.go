package engine2D

// Transform is a translate + axis scale affine map: p' = (S*p) + T.
type Transform struct {
	TX, TY float64
	SX, SY float64
}

func IdentityTransform() Transform {
	return Transform{SX: 1, SY: 1}
}

func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.TX + t.SX*x, t.TY + t.SY*y
}

func (t Transform) Translate(x, y float64) Transform {
	t.TX += t.SX * x
	t.TY += t.SY * y
	return t
}

func (t Transform) Scale(sx, sy float64) Transform {
	t.SX *= sx
	t.SY *= sy
	return t
}

// TransformStack implements the Save/Restore/Translate/Scale part of Canvas.
type TransformStack struct {
	current Transform
	saved   []Transform
	init    bool
}

func (s *TransformStack) Current() Transform {
	if !s.init {
		s.current, s.init = IdentityTransform(), true
	}
	return s.current
}

func (s *TransformStack) Save() {
	s.saved = append(s.saved, s.Current())
}

// Restore pops the last saved transform. An unbalanced Restore resets to
// identity.
func (s *TransformStack) Restore() {
	if len(s.saved) == 0 {
		s.current, s.init = IdentityTransform(), true
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *TransformStack) Translate(x, y float64) {
	s.current = s.Current().Translate(x, y)
}

func (s *TransformStack) Scale(sx, sy float64) {
	s.current = s.Current().Scale(sx, sy)
}

func (s *TransformStack) Reset() {
	s.current, s.init = IdentityTransform(), true
	s.saved = s.saved[:0]
}
