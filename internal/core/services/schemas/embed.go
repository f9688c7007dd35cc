// Package schemas embeds the JSON schemas persisted records are checked against.
package schemas

import _ "embed"

// Layout is the schema of the persisted layout preferences record.
//
//go:embed layout.schema.json
var Layout []byte
