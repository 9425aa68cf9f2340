// Command rfc822 validates eMail addresses, address lists, domains and IP
// addresses from the command line. Exactly one type flag selects the grammar
// to check the arguments against; without one, a diagnostic dump is printed
// for each argument instead.
//
// Exit codes: 0 all inputs valid; 40 no type flag given; 41 email-kind input
// did not parse; 42 input parsed but failed post-validation; 43 invalid
// domain, IPv4 or IPv6 input.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mailstack/rfc822/rfc5321"
	"github.com/mailstack/rfc822/rfc5322"
	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

const (
	exitValid      = 0
	exitNoMode     = 40
	exitUnparsable = 41
	exitInvalid    = 42
	exitBadLiteral = 43
)

var log = logrus.New()

func main() {
	var (
		addrSpec    = flag.Bool("addrspec", false, "check arguments as addr-spec")
		mailbox     = flag.Bool("mailbox", false, "check arguments as mailbox (sender)")
		address     = flag.Bool("address", false, "check arguments as address (sender, RFC 6854)")
		mailboxList = flag.Bool("mailboxlist", false, "check arguments as mailbox-list")
		addressList = flag.Bool("addresslist", false, "check arguments as address-list")
		domain      = flag.Bool("domain", false, "check arguments as FQDN")
		ipv4        = flag.Bool("ipv4", false, "check arguments as IPv4 address")
		ipv6        = flag.Bool("ipv6", false, "check arguments as IPv6 address")
		profiling   = flag.Bool("profile", false, "write a CPU profile for this run")
	)

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(),
			"usage: rfc822 [-addrspec|-mailbox|-address|-mailboxlist|-addresslist|-domain|-ipv4|-ipv6] [--] input...")
		flag.PrintDefaults()
	}

	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      isatty.IsTerminal(os.Stderr.Fd()),
		DisableTimestamp: true,
	})

	var check checker

	for _, mode := range []struct {
		selected bool
		check    checker
	}{
		{*addrSpec, checkAddrSpec},
		{*mailbox, checkSender(false)},
		{*address, checkSender(true)},
		{*mailboxList, checkList((*rfc5322.Path).AsMailboxList)},
		{*addressList, checkList((*rfc5322.Path).AsAddressList)},
		{*domain, checkDomain},
		{*ipv4, checkIPv4},
		{*ipv6, checkIPv6},
	} {
		if !mode.selected {
			continue
		}

		if check != nil {
			log.Error("more than one type flag given")
			flag.Usage()
			os.Exit(exitNoMode)
		}

		check = mode.check
	}

	os.Exit(profiled(*profiling, func() int {
		return run(check, flag.Args(), os.Stdout)
	}))
}

// profiled wraps fn with a CPU profile when enabled; the profile has to be
// stopped before the exit code reaches os.Exit.
func profiled(enabled bool, fn func() int) int {
	if enabled {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	return fn()
}

// checker validates one input, returning its canonical form and an exit
// code.
type checker func(input string) (string, int)

func run(check checker, args []string, out io.Writer) int {
	if check == nil {
		for _, arg := range args {
			dump(arg)
		}

		return exitNoMode
	}

	code := exitValid

	for _, arg := range args {
		rendered, rc := check(arg)
		if rc == exitValid {
			fmt.Fprintln(out, rendered)
		} else if rc > code {
			code = rc
		}
	}

	return code
}

func checkAddrSpec(input string) (string, int) {
	p := rfc5322.PathOf(input)
	if p == nil {
		return "", exitUnparsable
	}

	spec := p.AsAddrSpec()
	if spec == nil {
		return "", exitUnparsable
	}

	if !spec.Valid {
		return "", exitInvalid
	}

	return spec.String(), exitValid
}

func checkSender(allowRFC6854 bool) checker {
	return func(input string) (string, int) {
		p := rfc5322.PathOf(input)
		if p == nil {
			return "", exitUnparsable
		}

		addr := p.ForSender(allowRFC6854)
		if addr == nil {
			return "", exitUnparsable
		}

		if !addr.Valid {
			return "", exitInvalid
		}

		return addr.String(), exitValid
	}
}

func checkList(parse func(*rfc5322.Path) *rfc5322.AddressList) checker {
	return func(input string) (string, int) {
		p := rfc5322.PathOf(input)
		if p == nil {
			return "", exitUnparsable
		}

		list := parse(p)
		if list == nil {
			return "", exitUnparsable
		}

		if !list.Valid {
			log.WithField("invalid", list.InvalidsToString()).Warn("list did not validate")

			return "", exitInvalid
		}

		return list.String(), exitValid
	}
}

func checkDomain(input string) (string, int) {
	if !rfc5321.IsDomain(input) {
		return "", exitBadLiteral
	}

	return input, exitValid
}

func checkIPv4(input string) (string, int) {
	ip := rfc5321.IPAddressOf(input)
	if ip == nil {
		return "", exitBadLiteral
	}

	addr := ip.V4()
	if addr == nil {
		return "", exitBadLiteral
	}

	return formatV4(addr), exitValid
}

func checkIPv6(input string) (string, int) {
	ip := rfc5321.IPAddressOf(input)
	if ip == nil {
		return "", exitBadLiteral
	}

	addr := ip.V6()
	if addr == nil {
		return "", exitBadLiteral
	}

	return formatV6(addr), exitValid
}

func formatV4(addr []byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr[0], addr[1], addr[2], addr[3])
}

func formatV6(addr []byte) string {
	groups := make([]string, 0, 8)

	for i := 0; i < 16; i += 2 {
		groups = append(groups, fmt.Sprintf("%x", uint16(addr[i])<<8|uint16(addr[i+1])))
	}

	return strings.Join(groups, ":")
}

// dump reports everything a single input parses as; used when no type flag
// was given.
func dump(input string) {
	entry := log.WithField("input", input)

	if p := rfc5322.PathOf(input); p != nil {
		if spec := p.AsAddrSpec(); spec != nil {
			entry.WithField("valid", spec.Valid).Info("parses as addr-spec")
		}

		if list := p.AsMailboxList(); list != nil {
			entry.WithFields(logrus.Fields{
				"valid": list.Valid,
				"count": len(list.Addresses),
			}).Info("parses as mailbox-list")
		}

		if list := p.AsAddressList(); list != nil {
			entry.WithFields(logrus.Fields{
				"valid":  list.Valid,
				"count":  len(list.Addresses),
				"groups": list.IsAddressList,
			}).Info("parses as address-list")
		}
	}

	if rfc5321.IsDomain(input) {
		entry.Info("valid FQDN")
	}

	if ip := rfc5321.IPAddressOf(input); ip != nil {
		if ip.V4() != nil {
			entry.Info("valid IPv4 address")
		}

		if ip.V6() != nil {
			entry.Info("valid IPv6 address")
		}
	}
}
