package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
)

// AnvilDefaultAccounts are the first two dev accounts anvil unlocks with its default mnemonic.
var AnvilDefaultAccounts = []string{
	"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
}

type AnvilConfig struct {
	PortNumber string `json:"portNumber"`
	ChainId    string `json:"chainId"`
	BlockTime  string `json:"blockTime"`
}

func (c *AnvilConfig) RpcUrl() string {
	return fmt.Sprintf("http://localhost:%s", c.PortNumber)
}

// AnvilAvailable reports whether the anvil binary is on PATH.
func AnvilAvailable() bool {
	_, err := exec.LookPath("anvil")
	return err == nil
}

// StartAnvil runs a fresh dev node with unlocked accounts and waits until it answers eth_chainId.
func StartAnvil(ctx context.Context, cfg *AnvilConfig) (*exec.Cmd, error) {
	args := []string{
		"--chain-id", cfg.ChainId,
		"--port", cfg.PortNumber,
	}
	if cfg.BlockTime != "" {
		args = append(args, "--block-time", cfg.BlockTime)
	}
	fmt.Printf("Starting anvil with args: %v\n", args)
	cmd := exec.CommandContext(ctx, "anvil", args...)
	cmd.Stderr = os.Stderr

	if os.Getenv("JOIN_ANVIL_OUTPUT") == "true" {
		cmd.Stdout = os.Stdout
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start anvil: %w", err)
	}

	for i := 1; i < 10; i++ {
		if anvilReady(ctx, cfg.RpcUrl()) {
			fmt.Println("Anvil is up and running")
			return cmd, nil
		}
		fmt.Printf("Anvil not ready yet, retrying... %d\n", i)
		time.Sleep(time.Duration(i) * 250 * time.Millisecond)
	}

	_ = KillAnvil(cmd)
	return nil, fmt.Errorf("failed to start anvil")
}

func anvilReady(ctx context.Context, url string) bool {
	callCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	client, err := rpc.DialContext(callCtx, url)
	if err != nil {
		return false
	}
	defer client.Close()

	var chainId string
	return client.CallContext(callCtx, &chainId, "eth_chainId") == nil
}

func KillAnvil(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return fmt.Errorf("anvil command is not running")
	}

	if err := cmd.Process.Kill(); err != nil {
		return fmt.Errorf("failed to kill anvil process: %w", err)
	}
	_ = cmd.Wait()

	fmt.Println("Anvil process killed successfully")
	return nil
}
