package netparams

//go:generate go run ../cmd/genseeds --main=seeds/main.txt --test=seeds/test.txt --out=seeds_table.go

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"
	"net"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"
)

const (
	// SeedSpecSize is the width of a single record of a compiled-in seed
	// table: a 16 byte IPv6 (or IPv4-mapped) address followed by a big
	// endian port.
	SeedSpecSize = net.IPv6len + 2

	// oneWeek is the width of the window seed timestamps are drawn from,
	// in seconds.
	oneWeek = 7 * 24 * 60 * 60
)

// SeedSpec is a single entry of a compiled-in seed table.
type SeedSpec struct {
	Addr [net.IPv6len]byte
	Port uint16
}

// RandSource produces uniformly distributed integers in [0, n).
type RandSource interface {
	Int63n(n int64) int64
}

// cryptoRandSource is a RandSource backed by a cryptographic reader, the
// system's crypto/rand reader unless set otherwise.
type cryptoRandSource struct {
	reader io.Reader
}

// Int63n returns a uniformly distributed integer in [0, n). If the reader
// fails the start of the range is returned.
func (c cryptoRandSource) Int63n(n int64) int64 {
	reader := c.reader
	if reader == nil {
		reader = rand.Reader
	}

	v, err := rand.Int(reader, big.NewInt(n))
	if err != nil {
		log.Warnf("Unable to draw seed timestamp offset, using 0: %v",
			err)
		return 0
	}

	return v.Int64()
}

// ParseSeedTable decodes a fixed-width seed table. Any trailing partial
// record is ignored.
func ParseSeedTable(table []byte) []SeedSpec {
	specs := make([]SeedSpec, 0, len(table)/SeedSpecSize)
	for len(table) >= SeedSpecSize {
		var spec SeedSpec
		copy(spec.Addr[:], table[:net.IPv6len])
		spec.Port = binary.BigEndian.Uint16(table[net.IPv6len:])

		specs = append(specs, spec)
		table = table[SeedSpecSize:]
	}

	return specs
}

// ConvertSeeds turns seed table entries into peer addresses, preserving
// their order. Every address is given a last-seen time between one and two
// weeks in the past so that it is considered once, but loses out against
// any peer learned about later.
func ConvertSeeds(specs []SeedSpec, clk clock.Clock,
	rng RandSource) []*wire.NetAddress {

	now := clk.Now().Unix()

	addrs := make([]*wire.NetAddress, 0, len(specs))
	for _, spec := range specs {
		ip := make(net.IP, net.IPv6len)
		copy(ip, spec.Addr[:])

		lastSeen := now - rng.Int63n(oneWeek) - oneWeek

		addrs = append(addrs, &wire.NetAddress{
			Timestamp: time.Unix(lastSeen, 0),
			Services:  wire.SFNodeNetwork,
			IP:        ip,
			Port:      spec.Port,
		})
	}

	return addrs
}
