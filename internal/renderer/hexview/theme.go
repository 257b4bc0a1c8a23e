package hexview

import "github.com/dshills/hexstorm/internal/renderer/core"

// Theme holds the styles the view draws with.
type Theme struct {
	Offset    core.Style
	Digits    core.Style
	Human     core.Style
	Cursor    core.Style
	Subcursor core.Style
	Status    core.Style
	Error     core.Style
	Mode      core.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	base := core.DefaultStyle()
	return Theme{
		Offset:    base.WithForeground(core.ColorGray),
		Digits:    base,
		Human:     base.WithForeground(core.ColorCyan),
		Cursor:    base.Reverse(),
		Subcursor: base.Reverse().Underline(),
		Status:    base,
		Error:     base.WithForeground(core.ColorRed).Bold(),
		Mode:      base.Bold(),
	}
}

// Colors names the configurable theme colors. Empty fields keep the
// default.
type Colors struct {
	Offset string
	Human  string
	Cursor string
	Error  string
}

// WithColors returns t with the named colors applied. The cursor color
// is used as the cursor background instead of reverse video.
func (t Theme) WithColors(c Colors) (Theme, error) {
	set := func(name string, apply func(core.Color)) error {
		if name == "" {
			return nil
		}
		color, err := core.ParseColor(name)
		if err != nil {
			return err
		}
		apply(color)
		return nil
	}

	if err := set(c.Offset, func(v core.Color) { t.Offset = t.Offset.WithForeground(v) }); err != nil {
		return t, err
	}
	if err := set(c.Human, func(v core.Color) { t.Human = t.Human.WithForeground(v) }); err != nil {
		return t, err
	}
	if err := set(c.Error, func(v core.Color) { t.Error = t.Error.WithForeground(v) }); err != nil {
		return t, err
	}
	err := set(c.Cursor, func(v core.Color) {
		t.Cursor = core.DefaultStyle().WithForeground(core.ColorBlack).WithBackground(v)
		t.Subcursor = t.Cursor.Underline()
	})
	return t, err
}
