package handles

import "unsafe"

// Dropper is optionally implemented by pointees that need cleanup before
// their storage is released.
type Dropper interface {
	Drop()
}

// Cloner is optionally implemented by pointees with their own duplication
// logic. Pointees without it are duplicated by plain copy.
type Cloner[T any] interface {
	Clone() T
}

// cloneValue runs the pointee's duplication logic. The *T method set
// includes value-receiver methods, so one assertion covers both forms.
func cloneValue[T any](p *T) T {
	if c, ok := any(p).(Cloner[T]); ok {
		return c.Clone()
	}
	return *p
}

func dropValue[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
	}
}

func sizeOf[T any]() uintptr {
	var z T
	return unsafe.Sizeof(z)
}
