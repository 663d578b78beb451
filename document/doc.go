// Package document defines the résumé data submitted to the remote renderer.
//
// A Document carries the profile, dated work/education/project/award entries,
// skill groups, a template selector and optional section heading overrides.
// Template returns a filled-in placeholder that clients can edit, and
// GenerateSchema describes the generate tool input as JSON Schema.
package document
