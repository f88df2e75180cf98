package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"
)

// PromptPattern matches IOS-XE exec and config mode prompts:
// "bras-east-1#", "bras-east-1>", "bras-east-1(config)#",
// "bras-east-1(config-bba-group)#"
var PromptPattern = regexp.MustCompile(`(?m)[\w.\-]+(\([\w\-]+\))?[#>]\s*$`)

// pagerDisableCommand disables output pagination so show commands return
// in one read
const pagerDisableCommand = "terminal length 0"

// ExpectSession wraps google/goexpect for interactive IOS-XE CLI interaction
type ExpectSession struct {
	expecter *expect.GExpect
	promptRE *regexp.Regexp
	timeout  time.Duration
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient    *ssh.Client
	Timeout      time.Duration
	CustomPrompt *regexp.Regexp
	DisablePager bool
}

// NewExpectSession spawns an interactive CLI session over an established
// SSH connection and waits for the first prompt.
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	promptRE := cfg.CustomPrompt
	if promptRE == nil {
		promptRE = PromptPattern
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	session := &ExpectSession{
		expecter: exp,
		promptRE: promptRE,
		timeout:  cfg.Timeout,
	}

	// Wait for initial prompt
	if _, _, err := exp.Expect(promptRE, cfg.Timeout); err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", err)
	}

	// Non-fatal if it fails: some restricted views reject it
	if cfg.DisablePager {
		_, _ = session.Execute(pagerDisableCommand)
	}

	return session, nil
}

// Execute sends a command, waits for the next prompt and returns the
// cleaned output.
func (s *ExpectSession) Execute(command string) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	output, _, err := s.expecter.Expect(s.promptRE, s.timeout)
	if err != nil {
		return output, fmt.Errorf("timeout waiting for prompt after command %q: %w", command, err)
	}

	return cleanOutput(s.promptRE, output, command), nil
}

// cleanOutput strips ANSI sequences, the command echo and prompt lines
// from raw expect output.
func cleanOutput(promptRE *regexp.Regexp, output, command string) string {
	output = StripANSI(output)

	lines := strings.Split(output, "\n")
	var cleaned []string

	for i, line := range lines {
		// Skip the first line if it's the command echo
		if i == 0 && strings.Contains(line, command) {
			continue
		}
		if promptRE.MatchString(strings.TrimSpace(line)) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}

// SetTimeout updates the per-command timeout
func (s *ExpectSession) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}
