package rfc5322

// 3.2.4.  Quoted Strings

import "github.com/mailstack/rfc822/rfcparser"

func parseQuotedString(p *Path) (rfcparser.Substring, bool) {
	// quoted-string   =   [CFWS] DQUOTE *([FWS] qcontent) [FWS] DQUOTE [CFWS]
	//
	// The value is the wire representation, delimiters included.
	txn := p.cursor.Txn()
	defer txn.Done()

	parseCFWS(p)

	if p.cursor.Cur() != '"' {
		return rfcparser.Substring{}, false
	}

	start := p.cursor.Pos()

	p.cursor.Accept()

	for {
		parseFWS(p)

		if !parseQContent(p) {
			break
		}
	}

	// [FWS] after *([FWS] qcontent) already consumed above

	if p.cursor.Cur() != '"' {
		return rfcparser.Substring{}, false
	}

	p.cursor.Accept()

	end := p.cursor.Pos()

	parseCFWS(p)

	return rfcparser.Accept(txn, p.cursor.Slice(start, end)), true
}

func parseQContent(p *Path) bool {
	// qcontent        =   qtext / quoted-pair
	if rfcparser.Is(p.cursor.Cur(), rfcparser.IsQText) {
		p.cursor.Accept()

		return true
	}

	return parseQuotedPair(p)
}

func parseQuotedPair(p *Path) bool {
	// quoted-pair     =   "\" (%d32-126 / HTAB)
	if p.cursor.Cur() != '\\' {
		return false
	}

	if c := p.cursor.Peek(); (c >= 0x20 && c <= 0x7E) || c == 0x09 {
		p.cursor.Accept()
		p.cursor.Accept()

		return true
	}

	return false
}
