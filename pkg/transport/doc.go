// Package transport opens the byte channels the link protocol runs
// over: real serial ports, and ws:// endpoints for bench use against
// simulators. The protocol itself only sees an io.ReadWriteCloser.
package transport
