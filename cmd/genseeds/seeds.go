package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"go/format"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/galaxycoin/galaxyd/netparams"
)

// generatedHeader marks the output as generated so that linters and
// reviewers skip it.
const generatedHeader = "// Code generated by genseeds. DO NOT EDIT."

// seedTable is one named table of the generated file.
type seedTable struct {
	varName string
	comment string
	specs   []netparams.SeedSpec
}

// parseSeedList reads a seed list with one host[:port] entry per line. Blank
// lines and everything after a '#' are ignored. Hosts must be literal IP
// addresses.
func parseSeedList(r io.Reader, defaultPort uint16) ([]netparams.SeedSpec,
	error) {

	var (
		specs   []netparams.SeedSpec
		scanner = bufio.NewScanner(r)
		lineNum int
	)
	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		spec, err := parseSeed(line, defaultPort)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return specs, nil
}

// parseSeed converts a single host[:port] entry.
func parseSeed(entry string, defaultPort uint16) (netparams.SeedSpec, error) {
	var spec netparams.SeedSpec

	host, portStr, err := net.SplitHostPort(entry)
	if err != nil {
		// No port given, strip the brackets of a bare IPv6 address.
		host = strings.TrimSuffix(strings.TrimPrefix(entry, "["), "]")
		portStr = strconv.Itoa(int(defaultPort))
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return spec, fmt.Errorf("invalid IP address %q", host)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return spec, fmt.Errorf("invalid port %q", portStr)
	}

	copy(spec.Addr[:], ip.To16())
	spec.Port = uint16(port)

	return spec, nil
}

// renderSeedTables writes the given tables as a gofmt'ed Go source file of
// the named package.
func renderSeedTables(pkg string, tables []seedTable) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%s\n\npackage %s\n", generatedHeader, pkg)
	for _, table := range tables {
		fmt.Fprintf(&b, "\n// %s %s\nvar %s = []byte{\n", table.varName,
			table.comment, table.varName)

		for _, spec := range table.specs {
			var port [2]byte
			binary.BigEndian.PutUint16(port[:], spec.Port)

			fmt.Fprintf(&b, "\t// %s\n", seedString(spec))
			writeRow(&b, spec.Addr[:8])
			writeRow(&b, spec.Addr[8:])
			writeRow(&b, port[:])
		}

		b.WriteString("}\n")
	}

	return format.Source(b.Bytes())
}

// seedString renders a seed entry as host:port.
func seedString(spec netparams.SeedSpec) string {
	ip := net.IP(spec.Addr[:])

	return net.JoinHostPort(ip.String(), strconv.Itoa(int(spec.Port)))
}

// writeRow writes one line of comma separated hex bytes.
func writeRow(b *bytes.Buffer, row []byte) {
	b.WriteByte('\t')
	for i, v := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "0x%02x,", v)
	}
	b.WriteByte('\n')
}
