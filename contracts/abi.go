package contracts

// EnigmaABI is the subset of the Enigma contract interface used by the
// client: worker records and lifecycle, secret contract state deltas and
// task records.
const EnigmaABI = `[
	{
		"constant": true,
		"inputs": [{"name": "", "type": "address"}],
		"name": "workers",
		"outputs": [
			{"name": "signer", "type": "address"},
			{"name": "status", "type": "uint8"},
			{"name": "report", "type": "bytes"},
			{"name": "balance", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "", "type": "bytes32"}],
		"name": "tasks",
		"outputs": [
			{"name": "sender", "type": "address"},
			{"name": "inputsHash", "type": "bytes32"},
			{"name": "outputHash", "type": "bytes32"},
			{"name": "gasLimit", "type": "uint256"},
			{"name": "gasPx", "type": "uint256"},
			{"name": "blockNumber", "type": "uint256"},
			{"name": "status", "type": "uint8"},
			{"name": "proof", "type": "bytes"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_scAddr", "type": "bytes32"}],
		"name": "isDeployed",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_scAddr", "type": "bytes32"}],
		"name": "getCodeHash",
		"outputs": [{"name": "", "type": "bytes32"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_scAddr", "type": "bytes32"}],
		"name": "countStateDeltas",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_scAddr", "type": "bytes32"},
			{"name": "_index", "type": "uint256"}
		],
		"name": "getStateDeltaHash",
		"outputs": [{"name": "", "type": "bytes32"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_scAddr", "type": "bytes32"},
			{"name": "_start", "type": "uint256"},
			{"name": "_stop", "type": "uint256"}
		],
		"name": "getStateDeltaHashes",
		"outputs": [{"name": "", "type": "bytes32[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_scAddr", "type": "bytes32"},
			{"name": "_stateDeltaHash", "type": "bytes32"}
		],
		"name": "isValidDeltaHash",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [],
		"name": "login",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [],
		"name": "logout",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_custodian", "type": "address"},
			{"name": "_amount", "type": "uint256"}
		],
		"name": "deposit",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// EnigmaTokenABI is the ERC20 subset of the ENG token contract.
const EnigmaTokenABI = `[
	{
		"constant": true,
		"inputs": [{"name": "_owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "balance", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_spender", "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "_owner", "type": "address"},
			{"name": "_spender", "type": "address"}
		],
		"name": "allowance",
		"outputs": [{"name": "remaining", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "owner", "type": "address"},
			{"indexed": true, "name": "spender", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Approval",
		"type": "event"
	}
]`
