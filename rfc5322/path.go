// Package rfc5322 parses eMail address header content (From, To, Sender and
// friends) according to RFC 5322 §3.4, with the line-ending leniency of
// RFC 5321 (CRLF := ([CR] LF) / CR). Domain literals recognise only the
// bracketed IPv4 and "IPv6:" forms; General-address-literal and IPv6 zone
// identifiers are not supported.
//
// Build a Path with PathOf and call one of the parse methods on it:
// AsAddressList to validate recipients, AsMailboxList or ForSender for
// message senders. Parsed addr-specs carry the RFC 5321 validation verdict
// in their Valid flag; a parse failure yields nil instead.
package rfc5322

import (
	"fmt"
	"strings"

	"github.com/bradenaw/juniper/xslices"
	"github.com/mailstack/rfc822/rfc5321"
	"github.com/mailstack/rfc822/rfcparser"
	"golang.org/x/exp/slices"
)

// MaxInput bounds the input of PathOf, in codepoints. Arbitrary but
// extremely large already.
const MaxInput = 131072

// Path is a parser over one address header value. It owns a mutable cursor,
// so a Path is not safe for concurrent use; parse methods may be called
// repeatedly, each one rewinds to the start of the input.
type Path struct {
	cursor *rfcparser.Cursor
}

// PathOf creates a parser for the given address header content. It returns
// nil when the input exceeds MaxInput.
func PathOf(addresses string) *Path {
	cursor, err := rfcparser.NewCursor(addresses, MaxInput)
	if err != nil {
		return nil
	}

	return &Path{cursor: cursor}
}

// AsAddrSpec parses the input as a bare addr-spec. It returns nil unless the
// whole input matches.
func (p *Path) AsAddrSpec() *AddrSpec {
	p.cursor.Jmp(0)

	spec := parseAddrSpec(p)
	if spec == nil || p.cursor.Cur() != rfcparser.EOS {
		p.cursor.Jmp(0)

		return nil
	}

	return spec
}

// ForSender parses the input for the Sender and Resent-Sender headers. These
// normally use the mailbox production; RFC 6854 allows the address
// production instead, under the RFC 2026 §3.3(d) Limited Use caveat.
func (p *Path) ForSender(allowRFC6854forLimitedUse bool) *Address {
	p.cursor.Jmp(0)

	var addr *Address
	if allowRFC6854forLimitedUse {
		addr = parseAddress(p)
	} else {
		addr = parseMailbox(p)
	}

	if addr == nil || p.cursor.Cur() != rfcparser.EOS {
		p.cursor.Jmp(0)

		return nil
	}

	return addr
}

// AsMailboxList parses the input as mailbox-list, e.g. for the From and
// Resent-From headers (but see AsAddressList for RFC 6854's Limited Use
// variant).
func (p *Path) AsMailboxList() *AddressList {
	p.cursor.Jmp(0)

	list := parseMailboxList(p)
	if list == nil || p.cursor.Cur() != rfcparser.EOS {
		p.cursor.Jmp(0)

		return nil
	}

	return list
}

// AsAddressList parses the input as address-list, e.g. for the Reply-To, To,
// Cc, Resent-To and Resent-Cc headers.
func (p *Path) AsAddressList() *AddressList {
	p.cursor.Jmp(0)

	list := parseAddressList(p)
	if list == nil || p.cursor.Cur() != rfcparser.EOS {
		p.cursor.Jmp(0)

		return nil
	}

	return list
}

// AddrSpec is an addr-spec (eMail address): local-part and domain in their
// wire representation, i.e. dot-atom or quoted-string on the left and
// dot-atom or bracketed domain-literal on the right.
type AddrSpec struct {
	LocalPart rfcparser.Substring
	Domain    rfcparser.Substring

	// Valid reports whether the addr-spec survives RFC 5321 validation
	// (length limits, FQDN label syntax, address-literal form) on top of
	// merely parsing as an RFC 5322 addr-spec.
	Valid bool
}

func newAddrSpec(localPart, domain rfcparser.Substring) *AddrSpec {
	return &AddrSpec{
		LocalPart: localPart,
		Domain:    domain,
		Valid: len(localPart.Value) <= rfc5321.MaxLocalPart &&
			len(domain.Value) <= rfc5321.MaxDomain &&
			validDomain(domain.Value),
	}
}

func validDomain(domain string) bool {
	if strings.HasPrefix(domain, "[") {
		return rfc5321.IsAddressLiteral(domain)
	}

	return rfc5321.IsDomain(domain)
}

// String renders the addr-spec as localPart@domain.
func (a *AddrSpec) String() string {
	return a.LocalPart.Value + "@" + a.Domain.Value
}

// Address is a single mailbox or a named group of mailboxes.
type Address struct {
	// Group reports whether this is a group rather than a mailbox.
	Group bool

	// Label is the display-name: optional for a mailbox, mandatory for a
	// group.
	Label *rfcparser.Substring

	// Mailbox is the addr-spec behind a mailbox address; nil for groups.
	Mailbox *AddrSpec

	// Members holds the group's mailboxes; nil for mailbox addresses.
	// The grammar derives group members from mailbox-list, so a member is
	// never itself a group.
	Members []*Address

	// Valid reports whether all constituents are valid.
	Valid bool
}

func newMailbox(label *rfcparser.Substring, mailbox *AddrSpec) *Address {
	return &Address{
		Label:   label,
		Mailbox: mailbox,
		Valid:   mailbox.Valid,
	}
}

func newGroup(label rfcparser.Substring, members []*Address) *Address {
	return &Address{
		Group:   true,
		Label:   &label,
		Members: members,
		Valid: slices.IndexFunc(members, func(member *Address) bool {
			return !member.Valid
		}) < 0,
	}
}

// String renders the mailbox or group as a non-wrapped string:
// localPart@domain or label <localPart@domain> for mailboxes,
// label: member, member; for groups.
func (a *Address) String() string {
	if !a.Group {
		if a.Label == nil {
			return a.Mailbox.String()
		}

		return fmt.Sprintf("%v <%v>", a.Label, a.Mailbox)
	}

	return fmt.Sprintf("%v: %v;", a.Label, strings.Join(xslices.Map(a.Members, func(member *Address) string {
		return member.String()
	}), ", "))
}

// AddressList is the result of an address-list or mailbox-list parse (which
// of the two it is depends on the entry point that produced it).
type AddressList struct {
	Addresses []*Address

	// Valid reports whether the list is non-empty and all constituents
	// are valid.
	Valid bool

	// IsAddressList reports whether this is definitely an address-list
	// (group addresses are present). When false it may be either a
	// mailbox-list or an address-list whose members are all mailboxes.
	IsAddressList bool
}

func newAddressList(addresses []*Address) *AddressList {
	return &AddressList{
		Addresses: addresses,
		Valid: len(addresses) > 0 && slices.IndexFunc(addresses, func(addr *Address) bool {
			return !addr.Valid
		}) < 0,
		IsAddressList: slices.IndexFunc(addresses, func(addr *Address) bool {
			return addr.Group
		}) >= 0,
	}
}

// String renders the list as address *( ", " address ).
func (l *AddressList) String() string {
	return strings.Join(l.FlattenAddresses(), ", ")
}

// InvalidsToString renders only the invalid constituents, for error message
// construction. It returns the empty string when every constituent is valid;
// check Valid first and treat the result as diagnostic only.
func (l *AddressList) InvalidsToString() string {
	if l.Valid {
		return ""
	}

	invalid := xslices.Filter(l.Addresses, func(addr *Address) bool {
		return !addr.Valid
	})

	return strings.Join(xslices.Map(invalid, func(addr *Address) string {
		return addr.String()
	}), ", ")
}

// FlattenAddresses returns the formatted representation of each constituent.
func (l *AddressList) FlattenAddresses() []string {
	return xslices.Map(l.Addresses, func(addr *Address) string {
		return addr.String()
	})
}

// FlattenAddrSpecs returns the bare addr-spec of every mailbox, with groups
// flattened into their members, for e.g. SMTP Forward-Path construction.
func (l *AddressList) FlattenAddrSpecs() []string {
	var rv []string

	for _, addr := range l.Addresses {
		if addr.Group {
			for _, member := range addr.Members {
				rv = append(rv, member.Mailbox.String())
			}
		} else {
			rv = append(rv, addr.Mailbox.String())
		}
	}

	return rv
}
