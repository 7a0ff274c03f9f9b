package model

// Decorator enriches a template after it has been decoded and before it is
// normalised and checked, e.g. to stamp IDs or fill organisation defaults.
type Decorator interface {
	Decorate(*Template) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Template) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(t *Template) error {
	return fn(t)
}
