package discovery

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"net"
	"sort"
	"strconv"

	"github.com/btcsuite/btcd/wire"
	"github.com/galaxycoin/galaxyd/netparams"
)

// NetworkPeerBootstrapper is an interface that represents an initial peer
// bootstrap mechanism. This interface is to be used to bootstrap a new peer to
// the connection by providing it with the address of a set of existing peers
// on the network. Several bootstrap mechanisms can be implemented such as the
// compiled-in fixed seeds or a persisted address book.
type NetworkPeerBootstrapper interface {
	// SampleNodeAddrs uniformly samples a set of specified address from
	// the network peer bootstrapper source. The num addrs field passed in
	// denotes how many valid peer addresses to return. The passed set of
	// address keys allows the caller to ignore a set of peers perhaps
	// because they already have connections established.
	SampleNodeAddrs(numAddrs uint32,
		ignore map[string]struct{}) ([]*wire.NetAddress, error)

	// Name returns a human readable string which names the concrete
	// implementation of the NetworkPeerBootstrapper.
	Name() string
}

// AddrKey returns the key under which an address is tracked in ignore sets.
func AddrKey(addr *wire.NetAddress) string {
	return net.JoinHostPort(addr.IP.String(), strconv.Itoa(int(addr.Port)))
}

// MultiSourceBootstrap attempts to utilize a set of NetworkPeerBootstrapper
// passed in to return the target (numAddrs) number of peer addresses that can
// be used to bootstrap a peer just joining the network. Each bootstrapper will
// be queried successively until the target amount is met. If the ignore map is
// populated, then the bootstrappers will be instructed to skip those peers.
// An address returned by an earlier bootstrapper is never returned twice.
func MultiSourceBootstrap(ignore map[string]struct{}, numAddrs uint32,
	bootstrappers ...NetworkPeerBootstrapper) ([]*wire.NetAddress, error) {

	seen := make(map[string]struct{}, len(ignore))
	for key := range ignore {
		seen[key] = struct{}{}
	}

	var addrs []*wire.NetAddress
	for _, bootstrapper := range bootstrappers {
		// If we already have enough addresses, then we can exit early
		// w/o querying the additional bootstrappers.
		if uint32(len(addrs)) >= numAddrs {
			break
		}

		log.Infof("Attempting to bootstrap with: %v", bootstrapper.Name())

		// If we still need additional addresses, then we'll compute
		// the number of address remaining that we need to fetch.
		numAddrsLeft := numAddrs - uint32(len(addrs))
		log.Tracef("Querying for %v addresses", numAddrsLeft)
		netAddrs, err := bootstrapper.SampleNodeAddrs(numAddrsLeft, seen)
		if err != nil {
			// If we encounter an error with a bootstrapper, then
			// we'll continue on to the next available
			// bootstrapper.
			log.Errorf("Unable to query bootstrapper %v: %v",
				bootstrapper.Name(), err)
			continue
		}

		for _, addr := range netAddrs {
			key := AddrKey(addr)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			addrs = append(addrs, addr)
		}
	}

	log.Infof("Obtained %v addrs to bootstrap network with", len(addrs))

	return addrs, nil
}

// FixedSeedBootstrapper is an implementation of the NetworkPeerBootstrapper
// which samples from the compiled-in fixed seeds of a network.
type FixedSeedBootstrapper struct {
	seeds []*wire.NetAddress

	// hashAccumulator is a set of 32 random bytes that are read upon the
	// creation of the bootstrapper. We use this value to randomly select
	// seeds to connect to. After each selection, we rotate the accumulator
	// by hashing it with itself.
	hashAccumulator [32]byte

	tried map[string]struct{}
}

// A compile time assertion to ensure that FixedSeedBootstrapper meets the
// NetworkPeerBootstrapper interface.
var _ NetworkPeerBootstrapper = (*FixedSeedBootstrapper)(nil)

// NewFixedSeedBootstrapper returns a bootstrapper over the fixed seeds of the
// given network.
func NewFixedSeedBootstrapper(
	params *netparams.Params) (*FixedSeedBootstrapper, error) {

	f := &FixedSeedBootstrapper{
		seeds: params.FixedSeeds(),
		tried: make(map[string]struct{}),
	}

	if _, err := rand.Read(f.hashAccumulator[:]); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleNodeAddrs uniformly samples a set of specified address from the fixed
// seeds. Seeds returned by an earlier call are not returned again.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (f *FixedSeedBootstrapper) SampleNodeAddrs(numAddrs uint32,
	ignore map[string]struct{}) ([]*wire.NetAddress, error) {

	// Every seed is assigned a lottery number derived from our
	// accumulator and its address. The lowest numAddrs numbers win.
	type ticket struct {
		addr *wire.NetAddress
		hash [32]byte
	}

	var tickets []ticket
	for _, seed := range f.seeds {
		key := AddrKey(seed)
		if _, ok := ignore[key]; ok {
			continue
		}
		if _, ok := f.tried[key]; ok {
			continue
		}

		tickets = append(tickets, ticket{
			addr: seed,
			hash: sha256.Sum256(
				append(f.hashAccumulator[:], key...),
			),
		})
	}

	sort.Slice(tickets, func(i, j int) bool {
		return bytes.Compare(tickets[i].hash[:], tickets[j].hash[:]) < 0
	})
	if uint32(len(tickets)) > numAddrs {
		tickets = tickets[:numAddrs]
	}

	addrs := make([]*wire.NetAddress, 0, len(tickets))
	for _, t := range tickets {
		f.tried[AddrKey(t.addr)] = struct{}{}
		addrs = append(addrs, t.addr)
	}

	// We'll now rotate our hash accumulator one value forwards.
	f.hashAccumulator = sha256.Sum256(f.hashAccumulator[:])

	log.Tracef("Sampled %d of %d fixed seeds", len(addrs), len(f.seeds))

	return addrs, nil
}

// Name returns a human readable string which names the concrete implementation
// of the NetworkPeerBootstrapper.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (f *FixedSeedBootstrapper) Name() string {
	return "Fixed Seeds"
}

// StaticBootstrapper is an implementation of the NetworkPeerBootstrapper
// which hands out a fixed list of operator supplied peers in order.
type StaticBootstrapper struct {
	peers []*wire.NetAddress
}

// A compile time assertion to ensure that StaticBootstrapper meets the
// NetworkPeerBootstrapper interface.
var _ NetworkPeerBootstrapper = (*StaticBootstrapper)(nil)

// NewStaticBootstrapper returns a bootstrapper over the given peers, which
// are assumed to be full nodes.
func NewStaticBootstrapper(peers []*net.TCPAddr) *StaticBootstrapper {
	s := &StaticBootstrapper{
		peers: make([]*wire.NetAddress, 0, len(peers)),
	}
	for _, peer := range peers {
		s.peers = append(
			s.peers, wire.NewNetAddress(peer, wire.SFNodeNetwork),
		)
	}

	return s
}

// SampleNodeAddrs returns up to numAddrs of the configured peers that are not
// ignored.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (s *StaticBootstrapper) SampleNodeAddrs(numAddrs uint32,
	ignore map[string]struct{}) ([]*wire.NetAddress, error) {

	var addrs []*wire.NetAddress
	for _, peer := range s.peers {
		if uint32(len(addrs)) >= numAddrs {
			break
		}
		if _, ok := ignore[AddrKey(peer)]; ok {
			continue
		}

		addrs = append(addrs, peer)
	}

	return addrs, nil
}

// Name returns a human readable string which names the concrete implementation
// of the NetworkPeerBootstrapper.
//
// NOTE: Part of the NetworkPeerBootstrapper interface.
func (s *StaticBootstrapper) Name() string {
	return "Static Peers"
}
