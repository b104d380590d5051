package netparams

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

// TestGenesisCoinbaseEncoding pins the exact encoding of the genesis
// coinbase input script and its transaction hash.
func TestGenesisCoinbaseEncoding(t *testing.T) {
	t.Parallel()

	recipe := mainNetRecipe.genesis
	tx, err := recipe.coinbaseTx()
	require.NoError(t, err)

	require.Len(t, tx.TxIn, 1)
	sigScript := tx.TxIn[0].SignatureScript
	require.Equal(t, []byte{0x00, 0x01, 0x2a, 0x3a}, sigScript[:4])
	require.Equal(t, genesisMessage, string(sigScript[4:]))

	require.Len(t, tx.TxOut, 1)
	require.Zero(t, tx.TxOut[0].Value)
	pkScript := tx.TxOut[0].PkScript
	require.Equal(t, byte(65), pkScript[0])
	require.Equal(t, genesisOutputPubKey, hex.EncodeToString(pkScript[1:66]))
	require.Equal(t, byte(0xac), pkScript[66])

	require.Equal(t, genesisMerkleRoot, tx.TxHash().String())

	// The native transaction carries its timestamp right after the
	// version.
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	require.Equal(t, "01000000fd6e765c01", hex.EncodeToString(
		buf.Bytes()[:9],
	))
}

// TestMerkleRoot checks the degenerate and odd sized trees.
func TestMerkleRoot(t *testing.T) {
	t.Parallel()

	require.Equal(t, chainhash.Hash{}, MerkleRoot(nil))

	a := chainhash.DoubleHashH([]byte("a"))
	b := chainhash.DoubleHashH([]byte("b"))
	c := chainhash.DoubleHashH([]byte("c"))

	require.Equal(t, a, MerkleRoot([]chainhash.Hash{a}))

	// An odd level duplicates its last node.
	require.Equal(t,
		MerkleRoot([]chainhash.Hash{a, b, c, c}),
		MerkleRoot([]chainhash.Hash{a, b, c}),
	)
	require.NotEqual(t,
		MerkleRoot([]chainhash.Hash{a, b}),
		MerkleRoot([]chainhash.Hash{b, a}),
	)
}

// TestBuildGenesisDeterministic asserts that building the genesis block twice
// yields identical results.
func TestBuildGenesisDeterministic(t *testing.T) {
	t.Parallel()

	bits := uint32(0x1e0fffff)
	recipe := mainNetRecipe.genesis

	block1, hash1, err := buildGenesis(MainNet, &recipe, bits)
	require.NoError(t, err)
	block2, hash2, err := buildGenesis(MainNet, &recipe, bits)
	require.NoError(t, err)

	require.Equal(t, hash1, hash2)
	require.Equal(t, block1, block2)

	require.Equal(t, int32(1), block1.Header.Version)
	require.Equal(t, chainhash.Hash{}, block1.Header.PrevBlock)
	require.Equal(t, int64(genesisTimestamp), block1.Header.Timestamp.Unix())
	require.Equal(t, uint32(30074010), block1.Header.Nonce)
	require.Empty(t, block1.Signature)

	blockHash, err := block1.BlockHash()
	require.NoError(t, err)
	require.Equal(t, hash1, blockHash)
}

// TestBuildGenesisViolations asserts that any mismatch against the recipe's
// literals is reported as an invariant violation.
func TestBuildGenesisViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *genesisRecipe)
		bits   uint32
		field  string
	}{
		{
			name:   "wrong nonce",
			mutate: func(r *genesisRecipe) { r.nonce++ },
			bits:   0x1e0fffff,
			field:  "genesis hash",
		},
		{
			name:   "wrong bits",
			mutate: func(r *genesisRecipe) {},
			bits:   0x1f00ffff,
			field:  "genesis hash",
		},
		{
			name: "wrong message",
			mutate: func(r *genesisRecipe) {
				r.message += "!"
			},
			bits:  0x1e0fffff,
			field: "genesis merkle root",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			recipe := mainNetRecipe.genesis
			test.mutate(&recipe)

			_, _, err := buildGenesis(MainNet, &recipe, test.bits)
			require.ErrorIs(t, err, ErrInvariantViolation)

			var violation *InvariantViolation
			require.True(t, errors.As(err, &violation))
			require.Equal(t, MainNet, violation.Net)
			require.Equal(t, test.field, violation.Field)
			require.NotEqual(t, violation.Want, violation.Got)
		})
	}
}

// TestBlockCopy asserts that a copied block shares no mutable state with its
// source.
func TestBlockCopy(t *testing.T) {
	t.Parallel()

	recipe := mainNetRecipe.genesis
	block, _, err := buildGenesis(MainNet, &recipe, 0x1e0fffff)
	require.NoError(t, err)

	c := block.Copy()
	require.Equal(t, block, c)

	c.Transactions[0].TxIn[0].SignatureScript[4] = 'X'
	c.Transactions[0].TxOut[0].PkScript[1] = 0
	require.Equal(t, genesisMerkleRoot,
		block.Transactions[0].TxHash().String())
}
