package config

// Topical keyword sets used to filter GitHub Trending down to the
// sectors this brief tracks. Both lists are overridable from the YAML
// file; substring matching downstream is case-insensitive.

// DefaultAIKeywords selects AI-related repositories.
var DefaultAIKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "ML",
	"deep learning", "neural", "LLM", "GPT", "transformer",
	"agent", "autonomous agent", "reasoning", "o1", "o3",
	"Claude", "OpenAI", "Anthropic", "AGI", "multimodal",
}

// DefaultWeb3Keywords selects Web3-related repositories across the
// priority sectors: infrastructure, DeFi/trading, payments, RWA.
var DefaultWeb3Keywords = []string{
	"blockchain", "web3", "crypto", "ethereum", "solidity",
	"smart contract", "L1", "L2", "layer 2", "rollup",
	"solana", "polygon", "avalanche", "bitcoin", "wallet",

	"perpetual", "perp", "DEX", "decentralized exchange",
	"stablecoin", "stable coin", "USDC", "USDT", "payment",
	"RWA", "real world asset", "tokenization", "tokenized",

	"DeFi", "AMM", "liquidity", "yield", "staking",
	"trading terminal", "derivatives", "options",

	"DAO", "dApp", "NFT", "oracle", "bridge",
}
