package router

import "sync/atomic"

// Selector owns the currently mounted view. Navigate swaps it in one store,
// so readers never observe a partially updated view.
type Selector struct {
	router  *Router
	current atomic.Pointer[View]
	count   atomic.Int64
}

// NewSelector starts on the landing page.
func NewSelector(r *Router) *Selector {
	s := &Selector{router: r}
	v := r.Resolve("/")
	s.current.Store(&v)
	return s
}

// Navigate resolves path, mounts the result and returns it.
func (s *Selector) Navigate(path string) View {
	v := s.router.Resolve(path)
	s.current.Store(&v)
	s.count.Add(1)
	return v
}

// Current returns the view mounted by the latest navigation.
func (s *Selector) Current() View {
	return *s.current.Load()
}

// Navigations counts calls to Navigate.
func (s *Selector) Navigations() int64 {
	return s.count.Load()
}
