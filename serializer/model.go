package serializer

import "github.com/stretchr/objx"

// Serializable is anything that can render itself as a Document. request is
// opaque to this package: it is handed through to nested calls untouched.
type Serializable interface {
	Serialize(request any, options objx.Map) (*Document, error)
}

// Model is a mapped instance the Serializer can walk. Its ModelName must be
// registered.
//
// RelatedOne returns a nil interface when nothing is related. RelatedMany
// returns the related instances in order.
type Model interface {
	Serializable
	ModelName() string
	Attr(column string) (any, error)
	RelatedOne(relation string) (Serializable, error)
	RelatedMany(relation string) ([]Serializable, error)
}
