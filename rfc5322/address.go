package rfc5322

// 3.4.  Address Specification

import (
	"github.com/mailstack/rfc822/rfcparser"
)

func parseAddressList(p *Path) *AddressList {
	// address-list    =   (address *("," address))
	//
	// The list stops at the first element that fails to parse; the outer
	// transaction then rests just after the last good element, and the
	// full-input rule at the entry point rejects trailing junk.
	txn := p.cursor.Txn()
	defer txn.Done()

	addr := parseAddress(p)
	if addr == nil {
		return nil
	}

	txn.Commit()

	addresses := []*Address{addr}

	for p.cursor.Cur() == ',' {
		p.cursor.Accept()

		addr := parseAddress(p)
		if addr == nil {
			break
		}

		txn.Commit()

		addresses = append(addresses, addr)
	}

	return newAddressList(addresses)
}

func parseMailboxList(p *Path) *AddressList {
	// mailbox-list    =   (mailbox *("," mailbox))
	txn := p.cursor.Txn()
	defer txn.Done()

	mailbox := parseMailbox(p)
	if mailbox == nil {
		return nil
	}

	txn.Commit()

	addresses := []*Address{mailbox}

	for p.cursor.Cur() == ',' {
		p.cursor.Accept()

		mailbox := parseMailbox(p)
		if mailbox == nil {
			break
		}

		txn.Commit()

		addresses = append(addresses, mailbox)
	}

	return newAddressList(addresses)
}

func parseAddress(p *Path) *Address {
	// address         =   mailbox / group
	if mailbox := parseMailbox(p); mailbox != nil {
		return mailbox
	}

	return parseGroup(p)
}

func parseGroup(p *Path) *Address {
	// group           =   display-name ":" [group-list] ";" [CFWS]
	txn := p.cursor.Txn()
	defer txn.Done()

	label, ok := parseDisplayName(p)
	if !ok {
		return nil
	}

	if p.cursor.Cur() != ':' {
		return nil
	}

	p.cursor.Accept()

	members := parseGroupList(p)

	if p.cursor.Cur() != ';' {
		return nil
	}

	p.cursor.Accept()

	parseCFWS(p)

	return rfcparser.Accept(txn, newGroup(label, members))
}

func parseGroupList(p *Path) []*Address {
	// group-list      =   mailbox-list / CFWS
	//
	// Both alternatives may be absent (the empty group "g:;" is legal);
	// the caller requires the closing ";" either way.
	if list := parseMailboxList(p); list != nil {
		return list.Addresses
	}

	parseCFWS(p)

	return nil
}

func parseMailbox(p *Path) *Address {
	// mailbox         =   name-addr / addr-spec
	if addr := parseNameAddr(p); addr != nil {
		return addr
	}

	if spec := parseAddrSpec(p); spec != nil {
		return newMailbox(nil, spec)
	}

	return nil
}

func parseNameAddr(p *Path) *Address {
	// name-addr       =   [display-name] angle-addr
	txn := p.cursor.Txn()
	defer txn.Done()

	var label *rfcparser.Substring

	if l, ok := parseDisplayName(p); ok {
		label = &l
	}

	spec := parseAngleAddr(p)
	if spec == nil {
		return nil
	}

	return rfcparser.Accept(txn, newMailbox(label, spec))
}

func parseAngleAddr(p *Path) *AddrSpec {
	// angle-addr      =   [CFWS] "<" addr-spec ">" [CFWS]
	txn := p.cursor.Txn()
	defer txn.Done()

	parseCFWS(p)

	if p.cursor.Cur() != '<' {
		return nil
	}

	p.cursor.Accept()

	spec := parseAddrSpec(p)
	if spec == nil {
		return nil
	}

	if p.cursor.Cur() != '>' {
		return nil
	}

	p.cursor.Accept()

	parseCFWS(p)

	return rfcparser.Accept(txn, spec)
}

func parseDisplayName(p *Path) (rfcparser.Substring, bool) {
	// display-name    =   phrase
	return parsePhrase(p)
}

func parseAddrSpec(p *Path) *AddrSpec {
	// addr-spec       =   local-part "@" domain
	txn := p.cursor.Txn()
	defer txn.Done()

	localPart, ok := parseLocalPart(p)
	if !ok {
		return nil
	}

	if p.cursor.Cur() != '@' {
		return nil
	}

	p.cursor.Accept()

	domain, ok := parseDomain(p)
	if !ok {
		return nil
	}

	// The RFC 5321 validation verdict rides along on the node.
	return rfcparser.Accept(txn, newAddrSpec(localPart, domain))
}

func parseLocalPart(p *Path) (rfcparser.Substring, bool) {
	// local-part      =   dot-atom / quoted-string
	if sub, ok := parseDotAtom(p); ok {
		return sub, true
	}

	return parseQuotedString(p)
}

func parseDomain(p *Path) (rfcparser.Substring, bool) {
	// domain          =   dot-atom / domain-literal
	if sub, ok := parseDotAtom(p); ok {
		return sub, true
	}

	return parseDomainLiteral(p)
}

func parseDomainLiteral(p *Path) (rfcparser.Substring, bool) {
	// domain-literal  =   [CFWS] "[" *([FWS] dtext) [FWS] "]" [CFWS]
	//
	// The node keeps the full bracketed text; the address-literal
	// validator decides whether it denotes an IP address.
	txn := p.cursor.Txn()
	defer txn.Done()

	parseCFWS(p)

	if p.cursor.Cur() != '[' {
		return rfcparser.Substring{}, false
	}

	start := p.cursor.Pos()

	p.cursor.Accept()

	for {
		parseFWS(p)

		if !rfcparser.Is(p.cursor.Cur(), rfcparser.IsDText) {
			break
		}

		p.cursor.Accept()
	}

	// [FWS] after *([FWS] dtext) already consumed above

	if p.cursor.Cur() != ']' {
		return rfcparser.Substring{}, false
	}

	p.cursor.Accept()

	end := p.cursor.Pos()

	parseCFWS(p)

	return rfcparser.Accept(txn, p.cursor.Slice(start, end)), true
}
