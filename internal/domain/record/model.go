package record

// Validator checks request fields against their format constraints.
// Validate returns a *ValidationError (or nil).
type Validator interface {
	Validate() error
}

// Builder is a create request: it carries every field except the id.
type Builder[T any] interface {
	Validator
	Build() T
}

// Patcher is an update request: it overwrites the fields it carries.
type Patcher[T any] interface {
	Validator
	Apply(rec *T)
}
