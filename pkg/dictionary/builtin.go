package dictionary

import (
	_ "embed"
)

//go:embed builtin.toml
var builtinTOML []byte

// BuiltinSource returns the raw built-in dictionary
func BuiltinSource() []byte {
	return append([]byte(nil), builtinTOML...)
}

// Builtin parses the built-in dictionary
func Builtin() (*Dictionary, error) {
	return Parse(builtinTOML, FormatTOML)
}
