package deploy

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/user"
	"path"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

const sshConnectTimeout = 10 * time.Second

// SSHTarget writes files to a remote directory over SSH. Authentication
// uses the running SSH agent; there is no password or key-file support.
type SSHTarget struct {
	agentConn net.Conn
	client    *ssh.Client
	host      string
	root      string
}

// NewSSHTarget connects to the host named by u (ssh://user@host[:port]/path).
func NewSSHTarget(u *url.URL) (*SSHTarget, error) {
	root := strings.TrimSuffix(u.Path, "/")
	if root == "" {
		return nil, fmt.Errorf("ssh deploy target needs a remote path")
	}

	authSock := os.Getenv("SSH_AUTH_SOCK")
	if authSock == "" {
		return nil, fmt.Errorf("SSH agent not running. Start with `eval $(ssh-agent)` and add keys with `ssh-add`")
	}

	conn, err := net.Dial("unix", authSock)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to SSH agent at %s: %w", authSock, err)
	}

	agentClient := agent.NewClient(conn)
	signers, err := agentClient.Signers()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("getting SSH agent signers: %w", err)
	}
	if len(signers) == 0 {
		conn.Close()
		return nil, fmt.Errorf("SSH agent has no keys. Add keys with `ssh-add`")
	}

	username := u.User.Username()
	if username == "" {
		if cur, err := user.Current(); err == nil {
			username = cur.Username
		}
	}

	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "22")
	}

	// InsecureIgnoreHostKey disables host key verification. Acceptable for
	// deploys to servers the author already manages; use known_hosts
	// checking if the target host is not under your control.
	clientConfig := &ssh.ClientConfig{
		User:            username,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signers...)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         sshConnectTimeout,
	}

	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SSH connection to %s failed: %w", u.Hostname(), err)
	}

	return &SSHTarget{agentConn: conn, client: client, host: u.Hostname(), root: root}, nil
}

// Put streams data to the remote file through a shell session. The parent
// directory is created first so nested asset paths work.
func (t *SSHTarget) Put(_ context.Context, rel string, data []byte) error {
	dest := path.Join(t.root, rel)

	session, err := t.client.NewSession()
	if err != nil {
		return fmt.Errorf("creating SSH session on %s: %w", t.host, err)
	}
	defer session.Close()

	session.Stdin = strings.NewReader(string(data))
	cmd := fmt.Sprintf("mkdir -p %s && cat > %s", shellQuote(path.Dir(dest)), shellQuote(dest))
	if out, err := session.CombinedOutput(cmd); err != nil {
		return fmt.Errorf("writing %s on %s: %w (%s)", dest, t.host, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (t *SSHTarget) Description() string {
	return "ssh://" + t.host + t.root
}

func (t *SSHTarget) Close() error {
	var firstErr error
	if t.client != nil {
		firstErr = t.client.Close()
	}
	if t.agentConn != nil {
		if err := t.agentConn.Close(); firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// shellQuote single-quotes a path for use in a remote shell command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
