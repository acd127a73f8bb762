package mock

import "github.com/fwojciec/linkcrawl"

var _ linkcrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of linkcrawl.Frontier.
type Frontier struct {
	PushFn     func(url string) bool
	PopFn      func() (string, bool)
	LenFn      func() int
	ContainsFn func(url string) bool
}

func (f *Frontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *Frontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Contains(url string) bool {
	return f.ContainsFn(url)
}

var _ linkcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a mock implementation of linkcrawl.VisitedSet.
type VisitedSet struct {
	AddFn      func(url string) bool
	ContainsFn func(url string) bool
	LenFn      func() int
}

func (v *VisitedSet) Add(url string) bool {
	return v.AddFn(url)
}

func (v *VisitedSet) Contains(url string) bool {
	return v.ContainsFn(url)
}

func (v *VisitedSet) Len() int {
	return v.LenFn()
}
