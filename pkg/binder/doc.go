// Package binder fills request structs from HTTP input.
//
// Each binder reads one struct tag: Form reads `form`, Query reads `query`
// and Path reads chi route parameters through `path`. Fields without the tag
// are untouched, so handler.WithBinders can combine several binders on one
// struct. A binder that does not apply to a request returns
// ErrBinderNotApplicable and is skipped.
//
//	type langRequest struct {
//		Code string `path:"code"`
//		Next string `query:"next"`
//	}
package binder
