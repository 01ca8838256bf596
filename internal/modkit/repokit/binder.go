package repokit

// Binder produces a repo bound to one Queryer. Services hold a Binder and
// re-bind inside each Tx so every statement in the closure shares the
// transaction's connection
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function into a Binder (tests use this to swap in
// fakes without a PG shape)
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
