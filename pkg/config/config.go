package config

import (
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the dapp configuration
const (
	EnvDappProviderURLs        = "DAPP_PROVIDER_URLS"
	EnvDappPort                = "DAPP_PORT"
	EnvDappChainID             = "DAPP_CHAIN_ID"
	EnvDappLockContractAddress = "DAPP_LOCK_CONTRACT_ADDRESS"
	EnvDappDepositAmountWei    = "DAPP_DEPOSIT_AMOUNT_WEI"
	EnvDappLockDurationSeconds = "DAPP_LOCK_DURATION_SECONDS"
	EnvDappPollInterval        = "DAPP_POLL_INTERVAL"
	EnvDappWaitReceipt         = "DAPP_WAIT_RECEIPT"
	EnvDappJournalType         = "DAPP_JOURNAL_TYPE"
	EnvDappJournalPath         = "DAPP_JOURNAL_PATH"
	EnvDappRedisAddress        = "DAPP_REDIS_ADDRESS"
	EnvDappRedisPassword       = "DAPP_REDIS_PASSWORD"
	EnvDappRedisDB             = "DAPP_REDIS_DB"
	EnvDappVerbose             = "DAPP_VERBOSE"
)

const (
	// DefaultLockContractAddress is the deployed LockV2 contract the demo talks to.
	DefaultLockContractAddress = "0x16820Abe1b73B010ffE1fcd0Ea9eF4E4eEa5Eb01"

	OneGwei = 1_000_000_000

	// DefaultLockDurationSeconds is two hours.
	DefaultLockDurationSeconds = 2 * 60 * 60

	// SendEthAmountWei is 0.001 ETH.
	SendEthAmountWei = 1_000_000_000_000_000

	DefaultPort         = 8080
	DefaultPollInterval = 2 * time.Second
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// GetChainName returns a display name for a chain id, "unknown" for chains the dapp has no name for.
func GetChainName(chainId ChainId) ChainName {
	if name, ok := ChainIdToName[chainId]; ok {
		return name
	}
	return "unknown"
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (sepolia), %d (anvil), 0 (any)",
		ChainId_EthereumMainnet, ChainId_EthereumSepolia, ChainId_EthereumAnvil)
}

type JournalType string

const (
	JournalType_Memory  JournalType = "memory"
	JournalType_Badger  JournalType = "badger"
	JournalType_LevelDB JournalType = "leveldb"
	JournalType_Redis   JournalType = "redis"
)

// JournalConfig selects where delivered contract events are recorded.
type JournalConfig struct {
	Type          JournalType `json:"type" yaml:"type"`
	Path          string      `json:"path" yaml:"path"`
	RedisAddress  string      `json:"redisAddress" yaml:"redisAddress"`
	RedisPassword string      `json:"redisPassword" yaml:"redisPassword"`
	RedisDB       int         `json:"redisDb" yaml:"redisDb"`
}

func (jc *JournalConfig) Validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList
	switch jc.Type {
	case JournalType_Memory:
	case JournalType_Badger, JournalType_LevelDB:
		if jc.Path == "" {
			allErrors = append(allErrors, field.Required(path.Child("path"), fmt.Sprintf("path is required for the %s journal", jc.Type)))
		}
	case JournalType_Redis:
		if jc.RedisAddress == "" {
			allErrors = append(allErrors, field.Required(path.Child("redisAddress"), "redisAddress is required for the redis journal"))
		}
		if jc.RedisDB < 0 || jc.RedisDB > 15 {
			allErrors = append(allErrors, field.Invalid(path.Child("redisDb"), jc.RedisDB, "must be between 0-15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(path.Child("type"), jc.Type,
			[]string{string(JournalType_Memory), string(JournalType_Badger), string(JournalType_LevelDB), string(JournalType_Redis)}))
	}
	return allErrors
}

// DappConfig represents the complete configuration for the demo dapp
type DappConfig struct {
	// ProviderURLs are the wallet provider endpoints, in order of preference. The first
	// reachable one is used.
	ProviderURLs []string `json:"provider_urls"`
	Port         int      `json:"port"`

	// ChainID is the chain the dapp expects; 0 accepts whatever the wallet is on.
	ChainID ChainId `json:"chain_id"`

	LockContractAddress string `json:"lock_contract_address"`
	DepositAmountWei    string `json:"deposit_amount_wei"`
	LockDurationSeconds uint64 `json:"lock_duration_seconds"`

	PollInterval   time.Duration `json:"poll_interval"`
	WaitForReceipt bool          `json:"wait_for_receipt"`

	Journal JournalConfig `json:"journal"`

	Debug bool `json:"debug"`
}

// NewDefaultDappConfig returns a config populated with the demo's constants.
func NewDefaultDappConfig() *DappConfig {
	return &DappConfig{
		ProviderURLs:        []string{"http://localhost:8545"},
		Port:                DefaultPort,
		LockContractAddress: DefaultLockContractAddress,
		DepositAmountWei:    fmt.Sprintf("%d", OneGwei),
		LockDurationSeconds: DefaultLockDurationSeconds,
		PollInterval:        DefaultPollInterval,
		Journal: JournalConfig{
			Type: JournalType_Memory,
		},
	}
}

// Validate validates the dapp configuration
func (c *DappConfig) Validate() error {
	var allErrors field.ErrorList

	if len(c.ProviderURLs) == 0 {
		allErrors = append(allErrors, field.Required(field.NewPath("providerUrls"), "at least one provider url is required"))
	}
	for i, raw := range c.ProviderURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			allErrors = append(allErrors, field.Invalid(field.NewPath("providerUrls").Index(i), raw, "must be an absolute url"))
			continue
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "ws", "wss":
		default:
			allErrors = append(allErrors, field.NotSupported(field.NewPath("providerUrls").Index(i).Child("scheme"), u.Scheme, []string{"http", "https", "ws", "wss"}))
		}
	}

	if c.Port < 1 || c.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), c.Port, "must be between 1-65535"))
	}

	if c.ChainID != 0 {
		if _, ok := ChainIdToName[c.ChainID]; !ok {
			allErrors = append(allErrors, field.Invalid(field.NewPath("chainId"), c.ChainID, "unsupported chain, supported: "+GetSupportedChainIDsString()))
		}
	}

	if !common.IsHexAddress(c.LockContractAddress) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("lockContractAddress"), c.LockContractAddress, "invalid address format"))
	}

	if amount, ok := new(big.Int).SetString(c.DepositAmountWei, 10); !ok || amount.Sign() < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("depositAmountWei"), c.DepositAmountWei, "must be a non-negative base 10 integer"))
	}

	if c.PollInterval <= 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("pollInterval"), c.PollInterval.String(), "must be positive"))
	}

	allErrors = append(allErrors, c.Journal.Validate(field.NewPath("journal"))...)

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// GetDepositAmount returns the configured deposit value in wei. Only valid after Validate.
func (c *DappConfig) GetDepositAmount() *big.Int {
	amount, ok := new(big.Int).SetString(c.DepositAmountWei, 10)
	if !ok {
		return big.NewInt(OneGwei)
	}
	return amount
}

// GetLockDuration returns the lock duration as the uint256 argument of deposit.
func (c *DappConfig) GetLockDuration() *big.Int {
	return new(big.Int).SetUint64(c.LockDurationSeconds)
}

func (c *DappConfig) GetLockContractAddress() common.Address {
	return common.HexToAddress(c.LockContractAddress)
}
