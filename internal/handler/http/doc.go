// Package http implements the local API the UI process talks to.
//
// It exposes the data cache facade (collection reads and writes), the sync
// controls (status, sync now, clear queue), session management and build
// info. Request tracing, access logging, response compression and the
// optional HashSHA256 integrity check are handled here before requests are
// delegated to the service layer.
package http
