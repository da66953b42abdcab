package link

import (
	"encoding/binary"
	"encoding/hex"
	"io"
)

// Wire format constants.
const (
	// Header is the frame start sentinel.
	Header byte = 0x0d
	// Footer is the frame end sentinel.
	Footer byte = 0x20
	// FrameSize is the fixed encoded size of a frame.
	FrameSize = 11
)

// Frame contains the decoded control values of one protocol frame.
type Frame struct {
	Motor1PWM uint16
	Motor2PWM uint16
	Servo1PWM uint16
	Servo2PWM uint16
	Motor1Fwd bool
	Motor2Fwd bool
}

// Bytes returns encoded bytes for sending.
func (f Frame) Bytes() []byte {
	b := make([]byte, FrameSize)
	b[0] = Header
	binary.BigEndian.PutUint16(b[1:3], f.Motor1PWM)
	binary.BigEndian.PutUint16(b[3:5], f.Motor2PWM)
	binary.BigEndian.PutUint16(b[5:7], f.Servo1PWM)
	binary.BigEndian.PutUint16(b[7:9], f.Servo2PWM)
	b[9] = f.dirByte()
	b[10] = Footer
	return b
}

// Hex returns the encoded frame as a hex string.
func (f Frame) Hex() string {
	return hex.EncodeToString(f.Bytes())
}

// WriteTo writes encoded bytes in a single Write call.
func (f Frame) WriteTo(w io.Writer) (int, error) {
	return w.Write(f.Bytes())
}

func (f Frame) dirByte() byte {
	var d byte
	if f.Motor1Fwd {
		d |= 0x01
	}
	if f.Motor2Fwd {
		d |= 0x02
	}
	return d
}

// Decode parses exactly one encoded frame. It validates the frame size
// and the two sentinel bytes; PWM values are not range-checked because
// the protocol defines none. Reserved bits of the direction byte are
// ignored.
func Decode(b []byte) (Frame, error) {
	var f Frame
	if len(b) != FrameSize {
		return f, &SizeError{Size: len(b)}
	}
	if b[0] != Header {
		return f, &SentinelError{Which: SentinelHeader, Got: b[0]}
	}
	if b[10] != Footer {
		return f, &SentinelError{Which: SentinelFooter, Got: b[10]}
	}
	f.Motor1PWM = binary.BigEndian.Uint16(b[1:3])
	f.Motor2PWM = binary.BigEndian.Uint16(b[3:5])
	f.Servo1PWM = binary.BigEndian.Uint16(b[5:7])
	f.Servo2PWM = binary.BigEndian.Uint16(b[7:9])
	f.Motor1Fwd = b[9]&0x01 != 0
	f.Motor2Fwd = b[9]&0x02 != 0
	return f, nil
}
