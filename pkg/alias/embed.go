package alias

import _ "embed"

// builtinYAML embeds the default template-alias rules: the verbose
// canonical spellings libclang-style inspectors report for the common
// standard library aliases.
//
//go:embed aliases.yml
var builtinYAML []byte
