// Package connectors provides implementations of the Connector interface
// for the document stores a root can point at, and the Factory that picks
// one by URI scheme:
//
//	/path/to/dir, file:///path   filesystem
//	gdrive://{folderID}          Google Drive
//	github://owner/repo[/path]   GitHub repository contents
//	dropbox://{path}             Dropbox
package connectors
