// Package slcantransport is an opt-in, hosted-only adapter between a
// USB-CAN dongle exposing the slcan ASCII serial protocol and the raw
// []byte PDUs client.Context deals in. It never touches client.Context
// internals — it only produces/consumes frame bytes plus a CAN
// arbitration ID, the same contract any other transport the caller writes
// would use. Grounded on the teacher's sa53fw/mac package, the one place
// in the corpus that drives go.bug.st/serial directly.
package slcantransport

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// Transport wraps a serial.Port speaking the slcan ASCII protocol.
type Transport struct {
	port   serial.Port
	reader *bufio.Reader
}

// Open opens device at baud and sends the slcan open-channel command. mode
// mirrors sa53fw/mac.Init's serial.Mode{BaudRate: ...} construction.
func Open(device string, baud int) (*Transport, error) {
	port, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", device, err)
	}
	t := &Transport{port: port, reader: bufio.NewReader(port)}
	if _, err := t.port.Write([]byte("O\r")); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("opening slcan channel: %w", err)
	}
	return t, nil
}

// Close sends the slcan close-channel command and closes the serial port.
func (t *Transport) Close() error {
	_, _ = t.port.Write([]byte("C\r"))
	return t.port.Close()
}

// Send writes frame as a classic CAN data frame with the given 11-bit
// arbitration ID, using slcan's 't' command. Frames longer than 8 bytes are
// rejected with an error; CAN-FD frames are not supported.
func (t *Transport) Send(canID uint32, frame []byte) error {
	if len(frame) > 8 {
		return fmt.Errorf("slcantransport: frame too long for classic CAN (%d bytes)", len(frame))
	}
	line := fmt.Sprintf("t%03X%d%s\r", canID&0x7FF, len(frame), strings.ToUpper(hex.EncodeToString(frame)))
	_, err := t.port.Write([]byte(line))
	return err
}

// Receive blocks until one CAN frame's worth of bytes arrives and returns
// its arbitration ID and data.
func (t *Transport) Receive() (uint32, []byte, error) {
	for {
		line, err := t.reader.ReadString('\r')
		if err != nil {
			return 0, nil, err
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] != 't' {
			continue // ignore acks ('z'), errors, and extended-ID frames ('T') here
		}
		return parseDataFrame(line)
	}
}

func parseDataFrame(line string) (uint32, []byte, error) {
	if len(line) < 1+3+1 {
		return 0, nil, fmt.Errorf("slcantransport: short frame line %q", line)
	}
	var canID uint32
	if _, err := fmt.Sscanf(line[1:4], "%03X", &canID); err != nil {
		return 0, nil, fmt.Errorf("slcantransport: bad id in %q: %w", line, err)
	}
	dlc := int(line[4] - '0')
	if dlc < 0 || dlc > 8 {
		return 0, nil, fmt.Errorf("slcantransport: bad dlc in %q", line)
	}
	hexData := line[5:]
	if len(hexData) < dlc*2 {
		return 0, nil, fmt.Errorf("slcantransport: short payload in %q", line)
	}
	data, err := hex.DecodeString(hexData[:dlc*2])
	if err != nil {
		return 0, nil, fmt.Errorf("slcantransport: bad payload hex in %q: %w", line, err)
	}
	return canID, data, nil
}
