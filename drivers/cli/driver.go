package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ispstack/pado-balancer/types"
	"golang.org/x/crypto/ssh"
)

// Driver implements the types.Driver interface over an interactive SSH
// CLI session (IOS-XE BRAS)
type Driver struct {
	config        *types.DeviceConfig
	sshClient     *ssh.Client
	expectSession *ExpectSession
}

// NewDriver creates a new CLI driver
func NewDriver(config *types.DeviceConfig) (types.Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	// Default SSH port
	if config.Port == 0 {
		config.Port = 22
	}

	// Default timeout
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes the SSH connection and spawns the expect session
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	if config != nil {
		d.config = config
	}

	// Older IOS-XE builds only offer keyboard-interactive, so register it
	// alongside plain password auth
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // management network only
	}

	target := fmt.Sprintf("%s:%d", d.config.Address, d.config.Port)

	client, err := ssh.Dial("tcp", target, sshConfig)
	if err != nil {
		return fmt.Errorf("failed to dial SSH: %w", err)
	}

	d.sshClient = client

	expectSession, err := NewExpectSession(ExpectSessionConfig{
		SSHClient:    client,
		Timeout:      d.config.Timeout,
		DisablePager: true,
	})
	if err != nil {
		client.Close()
		d.sshClient = nil
		return fmt.Errorf("failed to create expect session: %w", err)
	}

	d.expectSession = expectSession

	return nil
}

// Disconnect closes the SSH connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.expectSession != nil {
		_ = d.expectSession.Close()
		d.expectSession = nil
	}
	if d.sshClient != nil {
		err := d.sshClient.Close()
		d.sshClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.sshClient != nil && d.expectSession != nil
}

// HealthCheck runs a cheap show command to verify the session is alive
func (d *Driver) HealthCheck(ctx context.Context) error {
	_, err := d.execCommand(ctx, "show clock")
	return err
}

// execCommand executes a CLI command over the expect-based PTY session
func (d *Driver) execCommand(ctx context.Context, command string) (string, error) {
	if !d.IsConnected() {
		return "", fmt.Errorf("not connected to device")
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	output, err := d.expectSession.Execute(command)
	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}

// ExecCommand implements types.CLIExecutor
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	return d.execCommand(ctx, command)
}

// ExecCommands implements types.CLIExecutor
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.execCommand(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("command %q failed: %w", cmd, err)
		}
		results = append(results, output)
	}
	return results, nil
}

// ApplyConfig implements types.CLIExecutor. It wraps the batch in
// "configure terminal" / "end" and aborts on the first command the device
// rejects, so a half-accepted batch is surfaced to the caller.
func (d *Driver) ApplyConfig(ctx context.Context, commands []string) error {
	if !d.IsConnected() {
		return fmt.Errorf("not connected to device")
	}
	if len(commands) == 0 {
		return nil
	}

	if _, err := d.execCommand(ctx, "configure terminal"); err != nil {
		return fmt.Errorf("failed to enter configuration mode: %w", err)
	}

	for _, cmd := range commands {
		output, err := d.execCommand(ctx, cmd)
		if err != nil {
			// Best effort: try to leave config mode before reporting
			_, _ = d.execCommand(ctx, "end")
			return fmt.Errorf("config command %q failed: %w", cmd, err)
		}
		if strings.Contains(output, "% Invalid input") {
			_, _ = d.execCommand(ctx, "end")
			return fmt.Errorf("device rejected config command %q: %s", cmd, output)
		}
	}

	if _, err := d.execCommand(ctx, "end"); err != nil {
		return fmt.Errorf("failed to leave configuration mode: %w", err)
	}

	return nil
}

// Ensure Driver implements CLIExecutor
var _ types.CLIExecutor = (*Driver)(nil)
