package tui

// Router sends directional input to whichever carousel currently has content
type Router struct {
	projects *Carousel
	articles *Carousel
	dragging *Carousel
}

func NewRouter(projects, articles *Carousel) *Router {
	return &Router{projects: projects, articles: articles}
}

// Target is evaluated on every call so it follows articles as they load
func (r *Router) Target() *Carousel {
	if r.articles.Len() > 0 {
		return r.articles
	}
	return r.projects
}

// Route applies a directional key. It does nothing while a text input has focus and
// reports whether the input was consumed.
func (r *Router) Route(direction Direction, inputFocused bool) bool {
	if inputFocused {
		return false
	}

	switch direction {
	case Forward:
		r.Target().Next()
	case Backward:
		r.Target().Prev()
	default:
		return false
	}
	return true
}

// BeginGesture starts a drag on the current target, the rest of the drag stays on it
func (r *Router) BeginGesture(x int) {
	r.dragging = r.Target()
	r.dragging.BeginGesture(x)
}

func (r *Router) MoveGesture(x int) {
	if r.dragging != nil {
		r.dragging.MoveGesture(x)
	}
}

func (r *Router) EndGesture() Direction {
	if r.dragging == nil {
		return None
	}
	direction := r.dragging.EndGesture()
	r.dragging = nil
	return direction
}
