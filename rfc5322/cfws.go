package rfc5322

// 3.2.2.  Folding White Space and Comments

import "github.com/mailstack/rfc822/rfcparser"

func wsp(cur, _ int) bool {
	return rfcparser.IsWSP(cur)
}

func parseCFWS(p *Path) bool {
	// CFWS            =   (1*([FWS] comment) [FWS]) / FWS
	//
	// Consumes as much as it can and reports whether anything was
	// consumed; it never fails destructively.
	consumed := parseFWS(p)

	if _, ok := parseComment(p); !ok {
		return consumed
	}

	for {
		parseFWS(p)

		if _, ok := parseComment(p); !ok {
			// [FWS] after 1*([FWS] comment) already consumed above
			return true
		}
	}
}

func parseFWS(p *Path) bool {
	// FWS             =   [*WSP CRLF] 1*WSP
	//
	// Lenient in the line ending: CRLF := ([CR] LF) / CR. A CR LF pair
	// only folds when WSP follows the LF; otherwise both codepoints are
	// given back.
	consumed := false

	if rfcparser.IsWSP(p.cursor.Cur()) {
		p.cursor.Skip(wsp)

		consumed = true
	}

	switch p.cursor.Cur() {
	case 0x0D:
		if p.cursor.Peek() == 0x0A {
			mark := p.cursor.Pos()

			p.cursor.Accept()
			p.cursor.Accept()

			if !rfcparser.IsWSP(p.cursor.Cur()) {
				p.cursor.Jmp(mark)

				return consumed
			}
		} else if rfcparser.IsWSP(p.cursor.Peek()) {
			p.cursor.Accept()
		} else {
			return consumed
		}

	case 0x0A:
		if !rfcparser.IsWSP(p.cursor.Peek()) {
			return consumed
		}

		p.cursor.Accept()

	default:
		return consumed
	}

	// 1*WSP after the line ending; the checks above guarantee at least one.
	p.cursor.Skip(wsp)

	return true
}

func parseComment(p *Path) (rfcparser.Substring, bool) {
	// comment         =   "(" *([FWS] ccontent) [FWS] ")"
	//
	// The comment text is returned even though current callers discard
	// it, so that a later revision can retain comments.
	txn := p.cursor.Txn()
	defer txn.Done()

	if p.cursor.Cur() != '(' {
		return rfcparser.Substring{}, false
	}

	p.cursor.Accept()

	start := p.cursor.Pos()

	for {
		parseFWS(p)

		if !parseCContent(p) {
			break
		}
	}

	// [FWS] after *([FWS] ccontent) already consumed above

	if p.cursor.Cur() != ')' {
		return rfcparser.Substring{}, false
	}

	end := p.cursor.Pos()

	p.cursor.Accept()

	return rfcparser.Accept(txn, p.cursor.Slice(start, end)), true
}

func parseCContent(p *Path) bool {
	// ccontent        =   ctext / quoted-pair / comment
	if rfcparser.Is(p.cursor.Cur(), rfcparser.IsCText) {
		p.cursor.Accept()

		return true
	}

	if parseQuotedPair(p) {
		return true
	}

	_, ok := parseComment(p)

	return ok
}
