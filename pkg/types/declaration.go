// Package types holds the value types shared across coogle's packages.
package types

// Declaration is one function declaration extracted by the source
// inspector. Ret and Args are type spellings the matching engine consumes
// as-is; Name, File and Line are opaque metadata carried through to
// reporting.
type Declaration struct {
	Name string   `json:"name"`
	Ret  string   `json:"ret"`
	Args []string `json:"args"`
	File string   `json:"file"`
	Line int      `json:"line"`
}

// Match pairs a matched declaration with its display signature. Signature
// is a plain string copied out of the scan worker's arena, so a Match is
// safe to hold after the worker's storage is reset.
type Match struct {
	Declaration
	Signature string `json:"signature"`
}
