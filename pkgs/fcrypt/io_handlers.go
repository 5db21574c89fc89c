// Package fcrypt wraps age for armored file encryption.
package fcrypt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// EncryptReader encrypts r for every recipient and writes the armored result to w.
func EncryptReader(r io.Reader, w io.Writer, recipients ...age.Recipient) error {
	if len(recipients) == 0 {
		return errors.New("at least one recipient is required")
	}

	armorWriter := armor.NewWriter(w)

	encryptor, err := age.Encrypt(armorWriter, recipients...)
	if err != nil {
		_ = armorWriter.Close()
		return fmt.Errorf("failed to create encryptor: %w", err)
	}

	if _, err := io.Copy(encryptor, r); err != nil {
		_ = encryptor.Close()
		_ = armorWriter.Close()
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	// Close in reverse order so the armor footer follows the final age chunk
	if err := encryptor.Close(); err != nil {
		_ = armorWriter.Close()
		return fmt.Errorf("failed to finalize encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalize armor: %w", err)
	}

	return nil
}

// EncryptFile encrypts inputPath into outputPath and removes the original.
func EncryptFile(inputPath, outputPath string, recipients ...age.Recipient) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inputFile.Close()
	}()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncryptReader(inputFile, outputFile, recipients...); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(outputPath)
		return err
	}

	if err := outputFile.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return os.Remove(inputPath)
}

// DecryptReader decrypts the armored data in r and writes the plaintext to w.
func DecryptReader(r io.Reader, w io.Writer, identity age.Identity) error {
	decryptor, err := age.Decrypt(armor.NewReader(r), identity)
	if err != nil {
		return fmt.Errorf("failed to create decryptor: %w", err)
	}

	if _, err := io.Copy(w, decryptor); err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	return nil
}

// DecryptFile decrypts inputPath into outputPath, leaving the original.
func DecryptFile(inputPath, outputPath string, identity age.Identity) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inputFile.Close()
	}()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := DecryptReader(inputFile, outputFile, identity); err != nil {
		_ = outputFile.Close()
		_ = os.Remove(outputPath)
		return err
	}

	return outputFile.Close()
}
