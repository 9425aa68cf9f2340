package rfc5322

// 3.2.3.  Atom

import (
	"strings"

	"github.com/bradenaw/juniper/xslices"
	"github.com/mailstack/rfc822/rfcparser"
)

func atext(cur, _ int) bool {
	return rfcparser.Is(cur, rfcparser.IsAText)
}

func parsePhrase(p *Path) (rfcparser.Substring, bool) {
	// phrase          =   1*word
	//
	// The phrase value joins the words with a single space each; quoted
	// words keep their delimiters verbatim.
	word, ok := parseWord(p)
	if !ok {
		return rfcparser.Substring{}, false
	}

	words := []rfcparser.Substring{word}

	for {
		word, ok := parseWord(p)
		if !ok {
			break
		}

		words = append(words, word)
	}

	return rfcparser.Substring{
		Start: words[0].Start,
		End:   words[len(words)-1].End,
		Value: strings.Join(xslices.Map(words, func(word rfcparser.Substring) string {
			return word.Value
		}), " "),
	}, true
}

func parseWord(p *Path) (rfcparser.Substring, bool) {
	// word            =   atom / quoted-string
	if sub, ok := parseAtom(p); ok {
		return sub, true
	}

	return parseQuotedString(p)
}

func parseAtom(p *Path) (rfcparser.Substring, bool) {
	// atom            =   [CFWS] 1*atext [CFWS]
	txn := p.cursor.Txn()
	defer txn.Done()

	parseCFWS(p)

	start := p.cursor.Pos()

	p.cursor.Skip(atext)

	end := p.cursor.Pos()
	if end == start {
		return rfcparser.Substring{}, false
	}

	parseCFWS(p)

	return rfcparser.Accept(txn, p.cursor.Slice(start, end)), true
}

func parseDotAtom(p *Path) (rfcparser.Substring, bool) {
	// dot-atom        =   [CFWS] dot-atom-text [CFWS]
	txn := p.cursor.Txn()
	defer txn.Done()

	parseCFWS(p)

	sub, ok := parseDotAtomText(p)
	if !ok {
		return rfcparser.Substring{}, false
	}

	parseCFWS(p)

	return rfcparser.Accept(txn, sub), true
}

func parseDotAtomText(p *Path) (rfcparser.Substring, bool) {
	// dot-atom-text   =   1*atext *("." 1*atext)
	//
	// A "." is only consumed when atext follows, so a trailing dot stays
	// in the input for the caller to reject.
	start := p.cursor.Pos()

	if !rfcparser.Is(p.cursor.Cur(), rfcparser.IsAText) {
		return rfcparser.Substring{}, false
	}

	p.cursor.Skip(atext)

	for p.cursor.Cur() == '.' && rfcparser.Is(p.cursor.Peek(), rfcparser.IsAText) {
		p.cursor.Accept()
		p.cursor.Skip(atext)
	}

	return p.cursor.Slice(start, p.cursor.Pos()), true
}
