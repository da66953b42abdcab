// Package link implements the fixed-frame actuator control protocol.
package link

// The link protocol is communicated between a controller and the drive
// firmware over a byte-oriented channel (e.g. serial port) and carries
// two motor PWM duty cycles, two servo PWM duty cycles and two direction
// flags in a fixed 11-byte frame delimited by sentinel bytes.
//
// The protocol intentionally carries no checksum to stay cheap on the
// firmware side. Robustness comes from the receiver instead: the Scanner
// recovers frame boundaries from an unaligned, possibly corrupted stream
// by sentinel scanning and keeps producing frames indefinitely. If bit
// verification is needed, parity can be enabled on the serial port.
//
// Producer: controller (Transmitter)
// Consumer: drive firmware, or Receiver on the return channel
