package fcrypt

import (
	"fmt"
	"os"
	"strings"

	"filippo.io/age"
)

// DecryptInPlace takes a path ending in .age, writes the decrypted contents
// next to it without the suffix and removes the encrypted file.
func DecryptInPlace(filepath string, privatekey age.Identity) error {
	if !strings.HasSuffix(filepath, ".age") {
		return fmt.Errorf("file %s does not have .age extension", filepath)
	}
	outputPath := strings.TrimSuffix(filepath, ".age")
	if err := DecryptFile(filepath, outputPath, privatekey); err != nil {
		return err
	}
	return os.Remove(filepath)
}
