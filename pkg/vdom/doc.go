// Package vdom provides the markup tree the views project into.
//
// Elements are created using variadic factory functions:
//
//	Div(Class("candidate-card"),
//	    H3(Text(c.Name)),
//	    Button(Action("save-vote"), Data("name", c.Name), "Save Vote"),
//	)
//
// Elements carrying a data-action attribute are the triggers the thin
// client delegates; see the action package for the decoding side.
package vdom
