// Where: assets/schemas_embed.go
// What: Embed JSON Schemas for stored profiles and configuration templates.
// Why: Lambda bundles ship as a single binary; schemas must travel with it.
package assets

import "embed"

//go:embed schemas/*.schema.json
var SchemasFS embed.FS
