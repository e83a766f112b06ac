// Package panel serves the studio's single-page editor.
//
// The page (HTML, one script, one stylesheet) is embedded into the binary.
// During UI work a directory can be served instead so edits show up on
// reload without a rebuild.
package panel
