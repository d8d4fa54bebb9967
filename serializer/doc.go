// Package serializer turns mapped model instances into JSON-compatible
// documents.
//
// Each model type is registered once with its schema and an optional override
// of its serialization options. The type-level options start from defaults
// where every relationship is off and no column is excluded, and the override
// is deep-merged on top:
//
//	serializer.Register(userSchema, objx.Map{
//		"relationships": objx.Map{"posts": true},
//		"exclude_attrs": []string{"password"},
//	})
//
// A call may layer more options on top. Options carrying the "_override" key
// are merged over fresh defaults instead of the type-level options:
//
//	doc, err := user.Serialize(req, objx.Map{
//		"_override":     true,
//		"relationships": objx.Map{"tags": true},
//	})
//
// Related records are serialized recursively with the original call options,
// so every nested instance re-merges them over its own type-level options.
// Relationship names that a nested type does not have are skipped. Cycles in
// the relationship graph are not detected: enabling a relationship on both
// sides of a cyclic graph recurses until the stack is exhausted.
package serializer
