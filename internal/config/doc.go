// Package config defines the format-agnostic configuration model, along
// with the Loader and Converter interfaces that concrete formats implement.
//
// A Model carries aliases, legacy aliases, named queries and inline graph
// data. Argument values stay as cty values until a Converter turns them into
// the plain Go values pipe types accept.
package config
