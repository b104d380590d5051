package netparams

import (
	"math"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// mainNetRecipe describes the main network. It is also the base every other
// network is derived from.
var mainNetRecipe = netRecipe{
	net:  MainNet,
	name: "mainnet",

	// The message start bytes are rarely used upper ASCII, not valid as
	// UTF-8, and produce a large 32-bit integer at any alignment.
	protocolMagic: [4]byte{0x19, 0xf3, 0x9a, 0x54},

	alertPubKey: "04128d00de3b13a00fd3e6e69b6487f4d16415c7e18fbc2a30882" +
		"12e915e022722f0c1c7154254cb7dacc569c799f55c8f97ecd6b7dcc92a885" +
		"5d4040d19ca8082",

	defaultPort:   54321,
	rpcPort:       54320,
	powLimitShift: 20,

	genesis: genesisRecipe{
		version:      genesisVersion,
		timestamp:    genesisTimestamp,
		message:      genesisMessage,
		coinbaseTag:  genesisCoinbaseTag,
		outputPubKey: genesisOutputPubKey,
		nonce:        30074010,
		merkleRoot:   genesisMerkleRoot,
		hash: "000001e618e2bed97d574602b5dd51fbba827a600a4758461be8b" +
			"cd162c4347d",
	},

	prefixes: [numAddressKinds][]byte{
		PubKeyAddress: {28},  // C
		ScriptAddress: {87},  // c
		SecretKey:     {45},
		ExtPublicKey:  {0x04, 0x89, 0x39, 0x62},
		ExtSecretKey:  {0x04, 0x88, 0xb5, 0x18},
	},

	seedTable:    mainSeedTable,
	lastPoWBlock: 100,
}

// mainNetOverrides keeps the base recipe as is.
var mainNetOverrides = netOverrides{
	net:       MainNet,
	name:      "mainnet",
	seedTable: mainSeedTable,
}

// testNetOverrides derives the test network from the main network. The
// coinbase and its merkle root are shared, while the proof of work limit is
// relaxed, which changes the genesis difficulty, nonce and hash. Prefixes are
// entirely distinct so keys and addresses never validate on the wrong
// network.
var testNetOverrides = netOverrides{
	net:           TestNet,
	name:          "testnet",
	protocolMagic: fn.Some([4]byte{0x37, 0x19, 0xa7, 0x4c}),
	alertPubKey: fn.Some("04f23c200c79d5ee12ae7caa912c40e121c6b3ddad9d8" +
		"d01c986e57eb62320c66df892275db5cf4628ef5757232222f0b6a930f20e3" +
		"bb9304a0d127f030c741fb4"),
	defaultPort:   fn.Some[uint16](64321),
	rpcPort:       fn.Some[uint16](64320),
	powLimitShift: fn.Some[uint](16),
	dataDirSuffix: fn.Some("testnet"),
	genesisNonce:  fn.Some[uint32](66143),
	genesisHash: fn.Some("00000ad57b1a3a80607a27185838b037a37224dbc0db5" +
		"b7d49878e733b4914e7"),
	prefixes: fn.Some([numAddressKinds][]byte{
		PubKeyAddress: {65},  // T
		ScriptAddress: {127}, // t
		SecretKey:     {58},
		ExtPublicKey:  {0x04, 0x35, 0x19, 0x55},
		ExtSecretKey:  {0x04, 0x35, 0x25, 0x63},
	}),
	seedTable:    testSeedTable,
	lastPoWBlock: fn.Some[int32](math.MaxInt32),
}
