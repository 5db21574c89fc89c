package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
	"github.com/hay-kot/ellipsis/pkgs/fcrypt"
)

// VaultSuffix marks the encrypted twin of a vault file.
const VaultSuffix = ".age"

// VaultPaths returns the plain and encrypted paths for a vault file, whether
// file names the plain or the .age version.
func VaultPaths(file string) (plain, sealed string) {
	if strings.HasSuffix(file, VaultSuffix) {
		return strings.TrimSuffix(file, VaultSuffix), file
	}
	return file, file + VaultSuffix
}

// Vault handles age encryption and decryption of vault var files.
type Vault struct {
	// Recipients is a list of age public keys for encryption
	Recipients []string
	// Identity is the path to the age private key for decryption
	Identity string
}

func NewVault(recipients []string, identity string) *Vault {
	return &Vault{
		Recipients: recipients,
		Identity:   identity,
	}
}

// Seal encrypts the plain file into its .age twin and removes the plain file.
func (v *Vault) Seal(file string) error {
	recipients, err := v.parseRecipients()
	if err != nil {
		return fmt.Errorf("failed to parse recipients: %w", err)
	}

	plain, sealed := VaultPaths(file)
	return fcrypt.EncryptFile(plain, sealed, recipients...)
}

// Open decrypts the .age twin back into the plain file and removes the
// encrypted version.
func (v *Vault) Open(file string) error {
	identity, err := v.loadIdentity()
	if err != nil {
		return fmt.Errorf("failed to load identity: %w", err)
	}

	_, sealed := VaultPaths(file)
	return fcrypt.DecryptInPlace(sealed, identity)
}

// ReadFile decrypts an encrypted file into memory.
func (v *Vault) ReadFile(sealed string) ([]byte, error) {
	identity, err := v.loadIdentity()
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	f, err := os.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to open encrypted file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := fcrypt.DecryptReader(f, &buf, identity); err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", sealed, err)
	}

	return buf.Bytes(), nil
}

func (v *Vault) parseRecipients() ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(v.Recipients))

	for _, recipientStr := range v.Recipients {
		recipientStr = strings.TrimSpace(recipientStr)
		if recipientStr == "" {
			continue
		}

		recipient, err := fcrypt.LoadPublicKey(recipientStr)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, recipient)
	}

	if len(recipients) == 0 {
		return nil, errors.New("no age recipients configured")
	}

	return recipients, nil
}

// loadIdentity reads the first age private key in the identity file, skipping
// comments and blank lines.
func (v *Vault) loadIdentity() (age.Identity, error) {
	if v.Identity == "" {
		return nil, errors.New("no identity configured for decryption")
	}

	identityData, err := os.ReadFile(v.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file %s: %w", v.Identity, err)
	}

	var keyLine string
	for _, line := range strings.Split(string(identityData), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			keyLine = line
			break
		}
	}

	if keyLine == "" {
		return nil, fmt.Errorf("no valid key found in identity file %s", v.Identity)
	}

	return fcrypt.LoadPrivateKey(keyLine)
}
