// Package workspace confines every filesystem operation to a single root
// directory.
//
// Caller-supplied folder names are untrusted. Resolve and Sanitize turn any
// candidate string into a path that stays inside the root: traversal
// sequences, absolute prefixes and characters that are illegal in common
// filesystems are stripped or replaced, never rejected. The worst case is the
// root itself.
//
// Workspace builds on the resolver to create folders, list generated
// artifacts and save rendered documents.
//
// Usage:
//
//	ws, err := workspace.New("resumes", workspace.WithArtifactExt("pdf"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	folder, err := ws.CreateFolder("clients/acme")
package workspace
