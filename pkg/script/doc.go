// Package script runs declarative build scripts against a builder.
//
// A script is a JSON document listing builder operations in order:
//
//	{
//	  "name": "list",
//	  "title": "A short list",
//	  "ops": [
//	    {"line": 1, "op": "element", "name": "ul", "attrs": {"class": "items"}},
//	    {"line": 2, "op": "element", "name": "li"},
//	    {"line": 2, "op": "text", "value": "first"},
//	    {"line": 2, "op": "close"},
//	    {"line": 3, "op": "close"}
//	  ]
//	}
//
// An op's line pins the line used for sequencing. Ops without a line take
// the next line after the previous op.
//
// Components are looked up by name in a Registry.
package script
