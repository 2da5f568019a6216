// Package sortcodec converts between the textual sort request parameter and model.Sort.
//
// A raw value is a delimiter separated list of property names optionally followed by a
// direction word, e.g. "firstname,lastname,asc". Parsing concatenates the orders of every raw
// value in input order. Folding is the inverse: consecutive orders sharing a direction are
// grouped back into one expression.
//
// Every function in this package is pure and safe for concurrent use.
package sortcodec
