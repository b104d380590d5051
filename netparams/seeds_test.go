package netparams

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParseSeedTable decodes a small table including a trailing partial
// record.
func TestParseSeedTable(t *testing.T) {
	t.Parallel()

	table := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xff, 0xff, 0x01, 0x02, 0x03, 0x04,
		0x20, 0x8d,
		0x2a, 0x01, 0x04, 0xf8, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x50,
		0xde, 0xad,
	}

	specs := ParseSeedTable(table)
	require.Len(t, specs, 2)

	require.Equal(t, "1.2.3.4", net.IP(specs[0].Addr[:]).String())
	require.Equal(t, uint16(8333), specs[0].Port)

	require.Equal(t, "2a01:4f8::1", net.IP(specs[1].Addr[:]).String())
	require.Equal(t, uint16(80), specs[1].Port)

	require.Empty(t, ParseSeedTable(nil))
	require.Empty(t, ParseSeedTable(table[:SeedSpecSize-1]))
}

// TestConvertSeedsEmpty asserts that an empty table yields no addresses.
func TestConvertSeedsEmpty(t *testing.T) {
	t.Parallel()

	addrs := ConvertSeeds(nil, clock.NewTestClock(testNow), constRand(0))
	require.NotNil(t, addrs)
	require.Empty(t, addrs)
}

// TestConvertSeedsOrder asserts that the conversion preserves table order,
// addresses and ports, and advertises full node services.
func TestConvertSeedsOrder(t *testing.T) {
	t.Parallel()

	specs := ParseSeedTable(mainSeedTable)
	addrs := ConvertSeeds(specs, clock.NewTestClock(testNow), constRand(0))
	require.Len(t, addrs, len(specs))

	for i, spec := range specs {
		require.Equal(t, net.IP(spec.Addr[:]).String(),
			addrs[i].IP.String())
		require.Equal(t, spec.Port, addrs[i].Port)
		require.Equal(t, wire.SFNodeNetwork, addrs[i].Services)
	}

	require.Equal(t, "45.32.114.9", addrs[0].IP.String())
	require.Equal(t, uint16(54321), addrs[0].Port)
}

// TestConvertSeedsTimestampWindow checks that every last-seen time lies
// between one and two weeks before now, for any clock and random draw.
func TestConvertSeedsTimestampWindow(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		now := time.Unix(rapid.Int64Range(2*oneWeek, 1<<40).Draw(
			t, "now",
		), 0)
		offset := rapid.Int64Range(0, oneWeek-1).Draw(t, "offset")
		n := rapid.IntRange(0, 16).Draw(t, "n")

		specs := make([]SeedSpec, n)
		addrs := ConvertSeeds(
			specs, clock.NewTestClock(now), constRand(offset),
		)
		require.Len(t, addrs, n)

		oldest := now.Add(-2 * oneWeek * time.Second)
		newest := now.Add(-oneWeek * time.Second)
		for _, addr := range addrs {
			require.False(t, addr.Timestamp.Before(oldest))
			require.False(t, addr.Timestamp.After(newest))
			want := newest.Add(-time.Duration(offset) * time.Second)
			require.True(t, want.Equal(addr.Timestamp))
		}
	})
}

// TestCryptoRandSourceRange draws from the system source and checks the
// bounds.
func TestCryptoRandSourceRange(t *testing.T) {
	t.Parallel()

	var src cryptoRandSource
	for i := 0; i < 100; i++ {
		v := src.Int63n(oneWeek)
		require.GreaterOrEqual(t, v, int64(0))
		require.Less(t, v, int64(oneWeek))
	}
}

// failingReader is an entropy source that always errors.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

// TestCryptoRandSourceFailure falls back to the start of the window when
// the entropy source fails, so converted seeds stay inside it.
func TestCryptoRandSourceFailure(t *testing.T) {
	t.Parallel()

	src := cryptoRandSource{reader: failingReader{}}
	require.Zero(t, src.Int63n(oneWeek))

	addrs := ConvertSeeds(
		[]SeedSpec{{Port: 1}}, clock.NewTestClock(testNow), src,
	)
	require.Len(t, addrs, 1)
	require.Equal(t, testNow.Unix()-oneWeek, addrs[0].Timestamp.Unix())
}

// TestFixedSeedsDiffer asserts that the test network does not inherit the
// main network's seeds and that handed out seeds are copies.
func TestFixedSeedsDiffer(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	main, err := r.Params(MainNet)
	require.NoError(t, err)
	test, err := r.Params(TestNet)
	require.NoError(t, err)

	mainSeeds := main.FixedSeeds()
	testSeeds := test.FixedSeeds()
	require.Len(t, mainSeeds, len(mainSeedTable)/SeedSpecSize)
	require.Len(t, testSeeds, len(testSeedTable)/SeedSpecSize)
	require.NotEqual(t, mainSeeds, testSeeds)

	for _, seed := range testSeeds {
		require.Equal(t, test.DefaultPort(), seed.Port)
	}

	mainSeeds[0].IP[15] ^= 0xff
	mainSeeds[0].Port = 1
	require.Equal(t, "45.32.114.9", main.FixedSeeds()[0].IP.String())
	require.Equal(t, uint16(54321), main.FixedSeeds()[0].Port)
}
