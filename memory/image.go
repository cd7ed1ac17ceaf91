package memory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadImage reads the simulator's text memory-image format from r and
// writes the resulting bytes into m (spec.md §6):
//
//	a line beginning with '@' contains a hexadecimal address (no "0x"
//	prefix) that sets the current write cursor; any other non-empty line
//	contains whitespace-separated two-hex-digit byte values, each stored
//	at the cursor which then increments by one. EOF ends loading.
func LoadImage(m *Memory, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var cursor uint32

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line[0] == '@' {
			addr, err := strconv.ParseUint(line[1:], 16, 32)
			if err != nil {
				return fmt.Errorf("memory: invalid address directive %q: %w", line, err)
			}
			cursor = uint32(addr)
			continue
		}

		for _, tok := range strings.Fields(line) {
			value, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return fmt.Errorf("memory: invalid byte literal %q: %w", tok, err)
			}
			if err := m.StoreByte(cursor, uint8(value)); err != nil {
				return err
			}
			cursor++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("memory: reading image: %w", err)
	}
	return nil
}
