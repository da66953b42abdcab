package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// settleDelay gives USB serial adapters time to settle after open;
// some drop the first bytes written immediately after.
const settleDelay = 50 * time.Millisecond

func openSerial(device string, baudRate int, readTimeout time.Duration) (io.ReadWriteCloser, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", device, err)
	}
	if readTimeout > 0 {
		if err = port.SetReadTimeout(readTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %v", device, err)
		}
	}
	time.Sleep(settleDelay)
	return port, nil
}
