package tui

import "fmt"

// SwipeThreshold is the horizontal distance a drag must exceed to count as navigation
const SwipeThreshold = 50

// Carousel cycles through a bounded, ordered list by index
type Carousel struct {
	index   int
	count   int
	gesture Gesture
}

func NewCarousel(count int) *Carousel {
	c := &Carousel{}
	c.Reset(count)
	return c
}

// Index is the currently shown item, meaningless when Len is 0
func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return c.count
}

// Reset replaces the item count and moves back to the first item
func (c *Carousel) Reset(count int) {
	if count < 0 {
		count = 0
	}
	c.count = count
	c.index = 0
	c.gesture = Gesture{}
}

func (c *Carousel) Next() {
	if c.count == 0 {
		return
	}
	c.index = (c.index + 1) % c.count
}

func (c *Carousel) Prev() {
	if c.count == 0 {
		return
	}
	c.index = (c.index - 1 + c.count) % c.count
}

// JumpTo shows item i. Callers must only pass indexes in [0, Len()).
func (c *Carousel) JumpTo(i int) {
	if i < 0 || i >= c.count {
		panic(fmt.Sprintf("carousel: index %d out of range [0, %d)", i, c.count))
	}
	c.index = i
}

// BeginGesture starts tracking a drag at x
func (c *Carousel) BeginGesture(x int) {
	c.gesture.Begin(x)
}

// MoveGesture records the latest drag position
func (c *Carousel) MoveGesture(x int) {
	c.gesture.Move(x)
}

// EndGesture finishes the drag and navigates if it was long enough
func (c *Carousel) EndGesture() Direction {
	direction := c.gesture.End()
	switch direction {
	case Forward:
		c.Next()
	case Backward:
		c.Prev()
	}
	return direction
}

// Direction is the navigation a gesture resolved to
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

// Gesture tracks a single horizontal drag
type Gesture struct {
	active bool
	startX int
	endX   int
}

func (g *Gesture) Begin(x int) {
	g.active = true
	g.startX = x
	g.endX = x
}

// Move overwrites the end position, only the last one matters
func (g *Gesture) Move(x int) {
	if !g.active {
		return
	}
	g.endX = x
}

// End resolves the drag and clears the gesture. Dragging left (start > end) moves forward.
func (g *Gesture) End() Direction {
	if !g.active {
		return None
	}
	delta := g.startX - g.endX
	*g = Gesture{}

	switch {
	case delta > SwipeThreshold:
		return Forward
	case delta < -SwipeThreshold:
		return Backward
	default:
		return None
	}
}

// Active reports whether a drag is in progress
func (g *Gesture) Active() bool {
	return g.active
}
