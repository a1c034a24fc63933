// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"errors"
	"time"
)

// ErrNotAttached is reported by Controller methods invoked before the
// controller is attached to a laid out Sheet.
var ErrNotAttached = errors.New("sheet: controller is not attached to a sheet")

// State is an immutable snapshot of a sheet, recomputed on every
// extent or scroll change. Fields derived from measurements fall back
// to safe defaults until the sheet has been laid out.
type State struct {
	// Extent is the fraction of the available height the sheet
	// covers.
	Extent    float32
	MinExtent float32
	MaxExtent float32
	// Progress is Extent mapped onto [0, 1] between the bounds.
	Progress float32
	// ScrollOffset is the content scroll offset in pixels.
	ScrollOffset float32
	IsLaidOut    bool
	// Expanded and Collapsed report whether the sheet rests at its
	// maximum or minimum extent.
	Expanded  bool
	Collapsed bool
	// AtTop and AtBottom report the content scroll position.
	AtTop    bool
	AtBottom bool
}

// Controller steers a sheet imperatively. Its methods are late bound:
// the zero Controller is inert and reports ErrNotAttached until the
// Sheet it is assigned to has completed a layout pass.
type Controller struct {
	sheet *Sheet
}

func (c *Controller) attached() (*Sheet, error) {
	if c == nil || c.sheet == nil || !c.sheet.laidOut {
		return nil, ErrNotAttached
	}
	return c.sheet, nil
}

// State returns the current sheet state, or the zero snapshot with
// safe defaults when unattached.
func (c *Controller) State() State {
	if c == nil || c.sheet == nil {
		return State{AtTop: true}
	}
	return c.sheet.state()
}

// SnapTo animates the sheet to the given extent, clamped to its
// bounds. A zero duration selects the adaptive one.
func (c *Controller) SnapTo(extent float32, duration time.Duration) error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.anim.snapToExtent(extent, 0, true, duration, nil)
	return nil
}

// Expand animates the sheet to its maximum extent.
func (c *Controller) Expand() error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.anim.snapToExtent(s.ext.max, 0, true, 0, nil)
	return nil
}

// Collapse animates the sheet to its minimum extent.
func (c *Controller) Collapse() error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.anim.snapToExtent(s.ext.min, 0, true, 0, nil)
	return nil
}

// ScrollTo animates the content scroll offset. A zero duration
// selects the configured base duration.
func (c *Controller) ScrollTo(offset float32, duration time.Duration) error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.anim.scrollTo(offset, duration)
	return nil
}

// Dismiss closes a bottom sheet as if it had been flung down.
func (c *Controller) Dismiss() error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.dismiss(0)
	return nil
}

// Rebuild requests a fresh frame with recomputed state.
func (c *Controller) Rebuild() error {
	s, err := c.attached()
	if err != nil {
		return err
	}
	s.rebuild = true
	return nil
}

// state derives a fresh snapshot from the current measurements.
func (s *Sheet) state() State {
	st := State{
		Extent:    s.ext.current,
		MinExtent: s.ext.min,
		MaxExtent: s.ext.max,
		IsLaidOut: s.laidOut,
		AtTop:     true,
	}
	if s.laidOut {
		if r := s.ext.max - s.ext.min; r > 0 {
			st.Progress = clamp32((s.ext.current-s.ext.min)/r, 0, 1)
		}
		st.Expanded = s.ext.isAtMax()
		st.Collapsed = s.ext.isAtMin()
		st.ScrollOffset = max32(s.view.offset(), 0)
		st.AtTop = st.ScrollOffset <= 0
		st.AtBottom = st.ScrollOffset >= s.view.maxOffset()
	}
	return st
}
