package clientdist

import _ "embed"

// ElectaJS is the thin client script.
//
// It is served by the server at "/client.js".
//
//go:embed electa.js
var ElectaJS []byte

// ElectaCSS is the site stylesheet, served at "/style.css".
//
//go:embed electa.css
var ElectaCSS []byte
