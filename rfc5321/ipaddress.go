package rfc5321

import "github.com/mailstack/rfc822/rfcparser"

// IPAddress parses the textual IPv4 and IPv6 address forms admissible in
// address literals: dotted-quad, and hex groups with one optional "::" and
// an optional embedded dotted-quad tail. Zone identifiers are rejected.
// Not safe for concurrent use.
type IPAddress struct {
	cursor *rfcparser.Cursor
}

// IPAddressOf creates a parser for the given address text. It returns nil
// when the input exceeds MaxIPAddress.
func IPAddressOf(text string) *IPAddress {
	cursor, err := rfcparser.NewCursor(text, MaxIPAddress)
	if err != nil {
		return nil
	}

	return &IPAddress{cursor: cursor}
}

// V4 parses the input as IPv4 dotted-quad and returns its four octets, or
// nil when the input is not exactly a dotted-quad.
func (ip *IPAddress) V4() []byte {
	c := ip.cursor
	c.Jmp(0)

	addr, ok := parseDottedQuad(c)
	if !ok || c.Cur() != rfcparser.EOS {
		c.Jmp(0)

		return nil
	}

	return addr
}

// V6 parses the input as IPv6 and returns its sixteen octets, or nil.
func (ip *IPAddress) V6() []byte {
	c := ip.cursor
	c.Jmp(0)

	addr, ok := parseV6(c)
	if !ok || c.Cur() != rfcparser.EOS {
		c.Jmp(0)

		return nil
	}

	return addr
}

// From parses the input as either address family, dotted-quad first, and
// returns the numeric address (4 or 16 octets) or nil.
func (ip *IPAddress) From() []byte {
	if addr := ip.V4(); addr != nil {
		return addr
	}

	return ip.V6()
}

func xdigit(cur, _ int) bool {
	return rfcparser.Is(cur, rfcparser.IsXDigit)
}

// parseDottedQuad consumes Snum 3("." Snum) and returns the four octets.
func parseDottedQuad(c *rfcparser.Cursor) ([]byte, bool) {
	addr := make([]byte, 0, 4)

	for i := 0; i < 4; i++ {
		if i > 0 {
			if c.Cur() != '.' {
				return nil, false
			}

			c.Accept()
		}

		octet, ok := parseSnum(c)
		if !ok {
			return nil, false
		}

		addr = append(addr, octet)
	}

	return addr, true
}

// parseSnum consumes 1*3DIGIT in [0,255], with no leading zero other than
// "0" itself.
func parseSnum(c *rfcparser.Cursor) (byte, bool) {
	if !rfcparser.Is(c.Cur(), rfcparser.IsDigit) {
		return 0, false
	}

	if c.Cur() == '0' {
		c.Accept()

		if rfcparser.Is(c.Cur(), rfcparser.IsDigit) {
			return 0, false
		}

		return 0, true
	}

	value := 0

	for digits := 0; rfcparser.Is(c.Cur(), rfcparser.IsDigit); digits++ {
		if digits == 3 {
			return 0, false
		}

		value = value*10 + (c.Cur() - '0')

		c.Accept()
	}

	if value > 255 {
		return 0, false
	}

	return byte(value), true
}

// parseV6 consumes 1..8 colon-separated groups of 1..4 HEXDIG, at most one
// "::" standing for one or more zero groups, and optionally an embedded
// dotted-quad as the final two groups.
func parseV6(c *rfcparser.Cursor) ([]byte, bool) {
	var groups []uint16

	ellipsis := -1

	if c.Cur() == ':' {
		// a leading colon is only legal as part of "::"
		if c.Peek() != ':' {
			return nil, false
		}

		c.Accept()
		c.Accept()

		ellipsis = 0
	}

	for c.Cur() != rfcparser.EOS {
		start := c.Pos()

		c.Skip(xdigit)

		if c.Cur() == '.' && c.Pos() > start {
			// embedded dotted-quad, counts as the final two groups
			c.Jmp(start)

			quad, ok := parseDottedQuad(c)
			if !ok {
				return nil, false
			}

			groups = append(groups,
				uint16(quad[0])<<8|uint16(quad[1]),
				uint16(quad[2])<<8|uint16(quad[3]))

			break
		}

		digits := c.Pos() - start
		if digits == 0 || digits > 4 {
			return nil, false
		}

		value := 0

		for _, r := range c.Slice(start, c.Pos()).Value {
			value = value<<4 | rfcparser.HexValue(int(r))
		}

		groups = append(groups, uint16(value))

		if c.Cur() == rfcparser.EOS {
			break
		}

		if c.Cur() != ':' {
			// also rejects "%" zone identifiers
			return nil, false
		}

		if c.Peek() == ':' {
			if ellipsis >= 0 {
				return nil, false
			}

			c.Accept()
			c.Accept()

			ellipsis = len(groups)

			continue
		}

		c.Accept()

		if c.Cur() == rfcparser.EOS {
			// a trailing colon is only legal as part of "::"
			return nil, false
		}
	}

	if ellipsis < 0 {
		if len(groups) != 8 {
			return nil, false
		}
	} else if len(groups) >= 8 {
		// "::" must stand for at least one group
		return nil, false
	}

	addr := make([]byte, 0, 16)

	for i, group := range groups {
		if i == ellipsis {
			for n := 8 - len(groups); n > 0; n-- {
				addr = append(addr, 0, 0)
			}
		}

		addr = append(addr, byte(group>>8), byte(group))
	}

	if ellipsis == len(groups) {
		for n := 8 - len(groups); n > 0; n-- {
			addr = append(addr, 0, 0)
		}
	}

	return addr, true
}
