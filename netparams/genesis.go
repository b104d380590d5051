package netparams

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/galaxycoin/galaxyd/glxutils"
	"golang.org/x/crypto/scrypt"
)

const (
	// scryptN, scryptR and scryptP are the cost parameters of the scrypt
	// function used to hash block headers.
	scryptN = 1024
	scryptR = 1
	scryptP = 1

	// genesisVersion is the version of both the genesis block and its
	// coinbase transaction.
	genesisVersion = 1

	// genesisTimestamp is the creation time of the genesis block and its
	// coinbase transaction.
	genesisTimestamp = 1551265533

	// genesisMessage is embedded in the coinbase input script as an
	// immutable marker. It is never parsed.
	genesisMessage = "Samsung Galaxy S10 Will Have InBuilt " +
		"Cryptocurrency Wallet"

	// genesisCoinbaseTag is pushed in front of genesisMessage in place of
	// the difficulty bits.
	genesisCoinbaseTag = 42

	// genesisOutputPubKey is the key the single genesis output pays to.
	genesisOutputPubKey = "04c629dd47950d15c4f63db4e67247335e09dec8b4ca4c" +
		"157a23858e2503709e5fe3ba75d5b5263b046ae4b20af135a4dc79e66123a" +
		"d9a15e65a98798bfee60724"

	// genesisMerkleRoot is the merkle root shared by every network's
	// genesis block.
	genesisMerkleRoot = "4a09612a7a64cabe1d27c6e94f7e10b2e86853353ecb4fc" +
		"2c2c675e87a530232"
)

// Transaction is a transaction in the chain's native format. It differs from
// wire.MsgTx by carrying its own timestamp after the version.
type Transaction struct {
	Version  int32
	Time     uint32
	TxIn     []*wire.TxIn
	TxOut    []*wire.TxOut
	LockTime uint32
}

// Serialize writes the transaction to w in its consensus encoding.
func (tx *Transaction) Serialize(w io.Writer) error {
	var buf [8]byte

	binary.LittleEndian.PutUint32(buf[:4], uint32(tx.Version))
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(buf[:4], tx.Time)
	if _, err := w.Write(buf[:4]); err != nil {
		return err
	}

	err := wire.WriteVarInt(w, 0, uint64(len(tx.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range tx.TxIn {
		_, err := w.Write(ti.PreviousOutPoint.Hash[:])
		if err != nil {
			return err
		}

		binary.LittleEndian.PutUint32(
			buf[:4], ti.PreviousOutPoint.Index,
		)
		if _, err := w.Write(buf[:4]); err != nil {
			return err
		}

		err = wire.WriteVarBytes(w, 0, ti.SignatureScript)
		if err != nil {
			return err
		}

		binary.LittleEndian.PutUint32(buf[:4], ti.Sequence)
		if _, err := w.Write(buf[:4]); err != nil {
			return err
		}
	}

	err = wire.WriteVarInt(w, 0, uint64(len(tx.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range tx.TxOut {
		binary.LittleEndian.PutUint64(buf[:], uint64(to.Value))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}

		if err := wire.WriteVarBytes(w, 0, to.PkScript); err != nil {
			return err
		}
	}

	binary.LittleEndian.PutUint32(buf[:4], tx.LockTime)
	_, err = w.Write(buf[:4])

	return err
}

// TxHash returns the double sha256 of the serialized transaction.
func (tx *Transaction) TxHash() chainhash.Hash {
	var buf bytes.Buffer

	// Writes to a bytes.Buffer cannot fail.
	_ = tx.Serialize(&buf)

	return chainhash.DoubleHashH(buf.Bytes())
}

// Copy returns a deep copy of the transaction.
func (tx *Transaction) Copy() *Transaction {
	c := &Transaction{
		Version:  tx.Version,
		Time:     tx.Time,
		TxIn:     make([]*wire.TxIn, 0, len(tx.TxIn)),
		TxOut:    make([]*wire.TxOut, 0, len(tx.TxOut)),
		LockTime: tx.LockTime,
	}
	for _, ti := range tx.TxIn {
		c.TxIn = append(c.TxIn, &wire.TxIn{
			PreviousOutPoint: ti.PreviousOutPoint,
			SignatureScript: append(
				[]byte(nil), ti.SignatureScript...,
			),
			Sequence: ti.Sequence,
		})
	}
	for _, to := range tx.TxOut {
		c.TxOut = append(c.TxOut, wire.NewTxOut(
			to.Value, append([]byte(nil), to.PkScript...),
		))
	}

	return c
}

// Block is a block in the chain's native format: a standard 80 byte header
// followed by the transactions and the block signature, which is empty for
// proof of work blocks.
type Block struct {
	Header       wire.BlockHeader
	Transactions []*Transaction
	Signature    []byte
}

// BlockHash returns the identifying hash of the block, which is the scrypt
// hash of its header.
func (b *Block) BlockHash() (chainhash.Hash, error) {
	return HeaderHash(&b.Header)
}

// Copy returns a deep copy of the block.
func (b *Block) Copy() *Block {
	c := &Block{
		Header:       b.Header,
		Transactions: make([]*Transaction, 0, len(b.Transactions)),
		Signature:    append([]byte(nil), b.Signature...),
	}
	for _, tx := range b.Transactions {
		c.Transactions = append(c.Transactions, tx.Copy())
	}

	return c
}

// HeaderHash computes scrypt(N=1024, r=1, p=1) over the serialized header,
// using the serialization as both password and salt.
func HeaderHash(header *wire.BlockHeader) (chainhash.Hash, error) {
	var buf bytes.Buffer
	if err := header.Serialize(&buf); err != nil {
		return chainhash.Hash{}, err
	}

	raw := buf.Bytes()
	sum, err := scrypt.Key(
		raw, raw, scryptN, scryptR, scryptP, chainhash.HashSize,
	)
	if err != nil {
		return chainhash.Hash{}, fmt.Errorf("unable to scrypt header: "+
			"%w", err)
	}

	var hash chainhash.Hash
	copy(hash[:], sum)

	return hash, nil
}

// MerkleRoot computes the root of the merkle tree over the given leaves.
// Levels with an odd number of nodes duplicate their last node. A single
// leaf is its own root; no leaves yield the zero hash.
func MerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}

	level := append([]chainhash.Hash(nil), leaves...)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		next := make([]chainhash.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, blockchain.HashMerkleBranches(
				&level[i], &level[i+1],
			))
		}
		level = next
	}

	return level[0]
}

// genesisRecipe is the fixed input from which a genesis block is built.
type genesisRecipe struct {
	version      int32
	timestamp    int64
	message      string
	coinbaseTag  int64
	outputPubKey string
	nonce        uint32
	merkleRoot   string
	hash         string
}

// coinbaseTx builds the genesis coinbase transaction of the recipe.
func (r *genesisRecipe) coinbaseTx() (*Transaction, error) {
	sigScript, err := txscript.NewScriptBuilder().
		AddInt64(0).
		AddInt64(r.coinbaseTag).
		AddData([]byte(r.message)).
		Script()
	if err != nil {
		return nil, fmt.Errorf("unable to build coinbase script: %w",
			err)
	}

	pubKey, err := hex.DecodeString(r.outputPubKey)
	if err != nil {
		return nil, fmt.Errorf("invalid genesis output key: %w", err)
	}
	pkScript, err := txscript.NewScriptBuilder().
		AddData(pubKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		return nil, fmt.Errorf("unable to build genesis output "+
			"script: %w", err)
	}

	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)

	return &Transaction{
		Version:  r.version,
		Time:     uint32(r.timestamp),
		TxIn:     []*wire.TxIn{wire.NewTxIn(prevOut, sigScript, nil)},
		TxOut:    []*wire.TxOut{wire.NewTxOut(0, pkScript)},
		LockTime: 0,
	}, nil
}

// buildGenesis assembles the genesis block described by the recipe with the
// given difficulty bits and verifies both its merkle root and its hash
// against the recipe's literals.
func buildGenesis(net NetworkID, r *genesisRecipe,
	bits uint32) (*Block, chainhash.Hash, error) {

	wantRoot, err := chainhash.NewHashFromStr(r.merkleRoot)
	if err != nil {
		return nil, chainhash.Hash{}, fmt.Errorf("invalid merkle root "+
			"literal: %w", err)
	}
	wantHash, err := chainhash.NewHashFromStr(r.hash)
	if err != nil {
		return nil, chainhash.Hash{}, fmt.Errorf("invalid genesis hash "+
			"literal: %w", err)
	}

	coinbase, err := r.coinbaseTx()
	if err != nil {
		return nil, chainhash.Hash{}, err
	}

	root := MerkleRoot([]chainhash.Hash{coinbase.TxHash()})
	if root != *wantRoot {
		return nil, chainhash.Hash{}, &InvariantViolation{
			Net:   net,
			Field: "genesis merkle root",
			Want:  wantRoot.String(),
			Got:   root.String(),
		}
	}

	block := &Block{
		Header: wire.BlockHeader{
			Version:    r.version,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: root,
			Timestamp:  time.Unix(r.timestamp, 0),
			Bits:       bits,
			Nonce:      r.nonce,
		},
		Transactions: []*Transaction{coinbase},
	}

	hash, err := block.BlockHash()
	if err != nil {
		return nil, chainhash.Hash{}, err
	}
	if hash != *wantHash {
		return nil, chainhash.Hash{}, &InvariantViolation{
			Net:   net,
			Field: "genesis hash",
			Want:  wantHash.String(),
			Got:   hash.String(),
		}
	}

	log.Debugf("Built %v genesis block %v: %v", net, hash,
		glxutils.SpewLogClosure(block))

	return block, hash, nil
}
