package border

import (
	"fmt"

	"github.com/cwbudde/algo-image/img/core"
)

// Pad copies src into dst surrounded by top/bottom/left/right margin pixels
// resolved under the border policy. dst must be exactly src plus the
// margins. Transparent has no meaning for padding and is rejected.
func Pad[T core.Element](dst, src core.Image[T], top, bottom, left, right int, b Border[T]) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		return fmt.Errorf("%w: negative margin", core.ErrInvalidDimensions)
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("%w: src %d, dst %d", core.ErrInvalidChannels, src.Channels, dst.Channels)
	}
	if dst.Width != src.Width+left+right || dst.Height != src.Height+top+bottom {
		return fmt.Errorf("%w: dst %dx%d, want %dx%d", core.ErrInvalidDimensions,
			dst.Width, dst.Height, src.Width+left+right, src.Height+top+bottom)
	}
	if err := b.Validate(src.Channels); err != nil {
		return err
	}
	if b.Mode == Transparent {
		return fmt.Errorf("%w: %s", ErrUnsupportedMode, b.Mode)
	}

	c := src.Channels
	fill := b.Fill(c)

	// Horizontal source index per destination column, or -1 for fill.
	cols := make([]int, dst.Width)
	for x := range cols {
		sx, ok := Resolve(b.Mode, x-left, src.Width)
		if !ok {
			sx = -1
		}
		cols[x] = sx
	}

	for y := 0; y < dst.Height; y++ {
		sy, rowOK := Resolve(b.Mode, y-top, src.Height)
		drow := dst.Row(y)

		if !rowOK {
			for x := 0; x < dst.Width; x++ {
				copy(drow[x*c:(x+1)*c], fill)
			}
			continue
		}

		srow := src.Row(sy)
		for x, sx := range cols {
			if sx < 0 {
				copy(drow[x*c:(x+1)*c], fill)
				continue
			}
			copy(drow[x*c:(x+1)*c], srow[sx*c:(sx+1)*c])
		}
	}
	return nil
}
