// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// SheetStyle draws a Sheet with a rounded surface, a drag handle and,
// for bottom sheets, a scrim over the host content.
type SheetStyle struct {
	Sheet *Sheet
	// Surface is the sheet background color.
	Surface color.NRGBA
	// Scrim is the color drawn over the host content behind a
	// bottom sheet, at full extent. Its alpha scales with the
	// extent.
	Scrim color.NRGBA
	// HandleColor is the color of the drag handle.
	HandleColor  color.NRGBA
	CornerRadius unit.Dp
	// BorderColor and BorderWidth outline the surface.
	BorderColor color.NRGBA
	BorderWidth unit.Dp
	// Inset pads the children inside the surface and Margin spaces
	// the sheet away from the host edges.
	Inset  layout.Inset
	Margin layout.Inset
	// Handle shows a drag handle on the top edge of the sheet.
	Handle bool
	// DismissableBackground dismisses a bottom sheet when the
	// scrim behind it is pressed.
	DismissableBackground bool
}

// Style configures a sheet with colors from the theme.
func Style(th *material.Theme, s *Sheet) SheetStyle {
	return SheetStyle{
		Sheet:                 s,
		Surface:               th.Bg,
		Scrim:                 color.NRGBA{A: 0x99},
		HandleColor:           color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		CornerRadius:          unit.Dp(16),
		Handle:                true,
		DismissableBackground: true,
	}
}

// Layout draws the styled sheet. header and footer may be nil.
func (st SheetStyle) Layout(gtx layout.Context, header, content, footer layout.Widget) layout.Dimensions {
	return st.Sheet.layout(gtx, &st, header, content, footer)
}

// update reacts to presses on the scrim.
func (st *SheetStyle) update(gtx layout.Context, s *Sheet) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &s.scrimTag,
			Kinds:  pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if e.Kind == pointer.Press && st.DismissableBackground && s.BottomSheet {
			s.dismiss(0)
		}
	}
}

// drawScrim covers the host content behind the sheet and registers
// the area above the sheet for tap-to-dismiss.
func (st *SheetStyle) drawScrim(gtx layout.Context, s *Sheet, maxX, top int) {
	if !s.BottomSheet {
		return
	}
	if st.Scrim.A > 0 && s.ext.max > 0 {
		c := st.Scrim
		c.A = uint8(float32(c.A) * clamp32(s.ext.current/s.ext.max, 0, 1))
		paint.Fill(gtx.Ops, c)
	}
	if st.DismissableBackground && top > 0 {
		defer clip.Rect(image.Rect(0, 0, maxX, top)).Push(gtx.Ops).Pop()
		event.Op(gtx.Ops, &s.scrimTag)
	}
}

// clipSurface pushes the rounded sheet outline and fills it. The
// bottom corners are pushed past the bottom edge so only the top
// ones show.
func (st *SheetStyle) clipSurface(gtx layout.Context, maxX, sheetH int) clip.Stack {
	r := gtx.Dp(st.CornerRadius)
	rr := clip.UniformRRect(image.Rect(0, 0, maxX, sheetH+r), r)
	outline := rr.Push(gtx.Ops)
	paint.Fill(gtx.Ops, st.Surface)
	if st.BorderWidth > 0 {
		w := float32(gtx.Dp(st.BorderWidth))
		paint.FillShape(gtx.Ops, st.BorderColor, clip.Stroke{Path: rr.Path(gtx.Ops), Width: w}.Op())
	}
	return outline
}

func (st *SheetStyle) drawHandle(gtx layout.Context, maxX int) {
	if !st.Handle {
		return
	}
	w, h := gtx.Dp(32), gtx.Dp(4)
	defer op.Offset(image.Pt((maxX-w)/2, gtx.Dp(8))).Push(gtx.Ops).Pop()
	defer clip.UniformRRect(image.Rect(0, 0, w, h), h/2).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, st.HandleColor)
}
