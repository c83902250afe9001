package symbol

import "fmt"

// UnknownShapeError is returned when a drawing command names a shape
// kind the renderer does not support. It is not recoverable: the
// input symbol definition is wrong.
type UnknownShapeError struct {
	Kind string
}

func (e *UnknownShapeError) Error() string {
	return fmt.Sprintf("unrecognized shape type: %s", e.Kind)
}

// UnhiddenPropertyError is returned when a property other than the
// reference or value carries no hide flag in its text effects. Such a
// property would render as stray visible text, so it is rejected.
type UnhiddenPropertyError struct {
	Name string
}

func (e *UnhiddenPropertyError) Error() string {
	return fmt.Sprintf("unknown property %q is not hidden", e.Name)
}
