package rfc5321

import "github.com/mailstack/rfc822/rfcparser"

// FQDN is a parser for fully qualified domain names as they appear in eMail
// domains. Not safe for concurrent use.
type FQDN struct {
	cursor *rfcparser.Cursor
}

// FQDNOf creates a parser for the given hostname. It returns nil when the
// input exceeds MaxPath (the RFC 5321 Forward-path limit).
func FQDNOf(hostname string) *FQDN {
	cursor, err := rfcparser.NewCursor(hostname, MaxPath)
	if err != nil {
		return nil
	}

	return &FQDN{cursor: cursor}
}

// IsDomain reports whether the input is a syntactically valid FQDN: one or
// more dot-separated labels of 1..63 octets, each starting with ALPHA,
// ending with ALPHA or DIGIT and containing only ALPHA, DIGIT or "-", with
// at most MaxFQDN octets in total. A trailing root dot is accepted and the
// empty label behind it ignored. A single label passes; callers wanting a
// two-label rule impose it themselves.
func (f *FQDN) IsDomain() bool {
	c := f.cursor
	c.Jmp(0)

	if c.Cur() == rfcparser.EOS {
		return false
	}

	total := c.Len()

	for {
		if !rfcparser.Is(c.Cur(), rfcparser.IsAlpha) {
			return false
		}

		start := c.Pos()

		c.Skip(func(cur, _ int) bool {
			return rfcparser.Is(cur, rfcparser.IsAlnus)
		})

		label := c.Slice(start, c.Pos()).Value
		if len(label) > MaxLabel {
			return false
		}

		if !rfcparser.Is(int(label[len(label)-1]), rfcparser.IsAlnum) {
			return false
		}

		if c.Cur() == rfcparser.EOS {
			break
		}

		if c.Cur() != '.' {
			return false
		}

		c.Accept()

		if c.Cur() == rfcparser.EOS {
			// root dot; it does not count towards the length limit
			total--

			break
		}
	}

	return total <= MaxFQDN
}

// IsDomain reports whether hostname is a syntactically valid FQDN, length
// bound included.
func IsDomain(hostname string) bool {
	f := FQDNOf(hostname)

	return f != nil && f.IsDomain()
}
