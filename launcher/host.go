package launcher

// Rect is a window or work-area rectangle in screen pixels.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Host opens windows and asks the user yes/no questions. Hosts may silently
// drop an open (popup blockers); the launcher never observes the outcome.
type Host interface {
	// Open shows url in a window called name. A nil geometry leaves size and
	// position to the host.
	Open(url, name string, geometry *Rect) error
	// Confirm asks the user to approve message.
	Confirm(message string) bool
}

// WorkAreaProvider reports the usable area of the display. ok is false when
// the dimensions cannot be read.
type WorkAreaProvider interface {
	WorkArea() (area Rect, ok bool)
}

// StaticWorkArea is a fixed work area. A zero value is unavailable.
type StaticWorkArea Rect

// WorkArea implements WorkAreaProvider.
func (s StaticWorkArea) WorkArea() (Rect, bool) {
	r := Rect(s)
	return r, !r.Empty()
}
