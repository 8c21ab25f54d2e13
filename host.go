package charts

import (
	"github.com/midbel/ggraphs/scene"
)

// Host gives a chart access to the page it lives in.
type Host interface {
	Container(id string) (Container, bool)
	Table(id string) (Table, bool)
	// Subscribe registers fn to be called each time the size of the page
	// changes. The returned function removes the registration.
	Subscribe(fn func()) func()
}

// Container is the element a chart draws into.
type Container interface {
	Size() (float64, float64)
	Environment() Environment
	Replace(*scene.Document)
}
