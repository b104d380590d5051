package discovery

import (
	"github.com/btcsuite/btcd/addrmgr"
	"github.com/btcsuite/btcd/wire"
	"github.com/galaxycoin/galaxyd/netparams"
)

// SeedAddressBook adds the fixed seeds of the network to an empty address
// book and returns the number of addresses the book gained. A book that
// already knows addresses is left untouched, since seeds only matter before
// any peer has been learned about.
func SeedAddressBook(book *addrmgr.AddrManager,
	params *netparams.Params) int {

	before := book.NumAddresses()
	if before > 0 {
		log.Debugf("Address book holds %d addresses, not adding seeds",
			before)
		return 0
	}

	seeds := params.FixedSeeds()
	if len(seeds) == 0 {
		return 0
	}

	addrs := make([]*wire.NetAddressV2, 0, len(seeds))
	for _, seed := range seeds {
		ip := seed.IP.To4()
		if ip == nil {
			ip = seed.IP.To16()
		}

		addrs = append(addrs, wire.NetAddressV2FromBytes(
			seed.Timestamp, seed.Services, ip, seed.Port,
		))
	}

	// There is no peer the seeds were learned from, so the first seed
	// stands in as the source, as is done for DNS seeds.
	book.AddAddresses(addrs, addrs[0])

	added := book.NumAddresses() - before
	log.Infof("Added %d %v fixed seeds to the address book", added, params)

	return added
}

// AddrBookBootstrapper is an implementation of the NetworkPeerBootstrapper
// which samples from the addresses an address book already knows.
type AddrBookBootstrapper struct {
	book *addrmgr.AddrManager
}

// A compile time assertion to ensure that AddrBookBootstrapper meets the
// NetworkPeerBootstrapper interface.
var _ NetworkPeerBootstrapper = (*AddrBookBootstrapper)(nil)

// NewAddrBookBootstrapper returns a bootstrapper backed by an address book.
func NewAddrBookBootstrapper(book *addrmgr.AddrManager) *AddrBookBootstrapper {
	return &AddrBookBootstrapper{book: book}
}

// drawsPerAddr bounds the number of random draws made from the address book
// per address it knows. Draws are made with replacement, so a small book
// needs several times its size to be covered.
const drawsPerAddr = 100

// SampleNodeAddrs returns up to numAddrs distinct addresses drawn at random
// from the address book.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (a *AddrBookBootstrapper) SampleNodeAddrs(numAddrs uint32,
	ignore map[string]struct{}) ([]*wire.NetAddress, error) {

	known := a.book.NumAddresses()
	if known == 0 || numAddrs == 0 {
		return nil, nil
	}

	var (
		addrs []*wire.NetAddress
		seen  = make(map[string]struct{}, known)
	)
	for draws := 0; draws < known*drawsPerAddr; draws++ {
		if uint32(len(addrs)) >= numAddrs || len(seen) >= known {
			break
		}

		ka := a.book.GetAddress()
		if ka == nil {
			break
		}

		addr := ka.NetAddress().ToLegacy()
		if addr == nil || addr.IP == nil {
			continue
		}

		key := AddrKey(addr)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := ignore[key]; ok {
			continue
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}

// Name returns a human readable string which names the concrete implementation
// of the NetworkPeerBootstrapper.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (a *AddrBookBootstrapper) Name() string {
	return "Address Book"
}
