package transport

import (
	"io"

	"golang.org/x/net/websocket"
)

func openWebsocket(url string) (io.ReadWriteCloser, error) {
	return websocket.Dial(url, "", "http://localhost/")
}
