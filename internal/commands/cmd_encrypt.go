package commands

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/pkgs/printer"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type EncryptCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Check bool
	}
}

func NewEncryptCmd(coreFlags *core.Flags) *EncryptCmd {
	return &EncryptCmd{coreFlags: coreFlags}
}

func (ec *EncryptCmd) Register(app *cli.Command) *cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "encrypt all vault var files in-place",
			Description: `Encrypts every var file marked 'vault: true' using age encryption.

The command will:
- Use the configured age recipients (public keys) for encryption
- Write <file>.age next to each plain vault file
- Remove the plain file once it is encrypted

With --check nothing is written; the command fails when any vault file is
present unencrypted. This is what the pre-commit hook runs.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "check",
					Usage:       "fail if any vault file is not encrypted",
					Destination: &ec.flags.Check,
				},
			},
			Action: ec.encrypt,
		},
		{
			Name:  "decrypt",
			Usage: "decrypt all vault var files in-place",
			Description: `Decrypts every .age vault var file with the configured age identity
(private key) and removes the encrypted version. Files that already have a
plain copy are skipped.

Vault files do not need to be decrypted to be used: ellipsis decrypts them in
memory while loading. Decrypt them to edit, then run 'ellipsis encrypt'.`,
			Action: ec.decrypt,
		},
	}

	app.Commands = append(app.Commands, cmds...)
	return app
}

func (ec *EncryptCmd) encrypt(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.ReadConfigFile(ec.coreFlags.ConfigFilePath)
	if err != nil {
		return err
	}

	files, err := cfg.EncryptedFiles()
	if err != nil {
		return err
	}

	if ec.flags.Check {
		return checkEncrypted(printer.Ctx(ctx), files)
	}

	if len(files) == 0 {
		log.Info().Msg("No files configured for encryption")
		return nil
	}

	vault, err := cfg.Vault()
	if err != nil {
		return err
	}

	encryptedCount := 0
	for _, file := range files {
		plain, sealed := core.VaultPaths(file)

		if !exists(plain) {
			log.Debug().Str("file", plain).Msg("Plain file doesn't exist, skipping")
			continue
		}

		log.Info().Str("source", plain).Str("target", sealed).Msg("Encrypting file")
		if err := vault.Seal(plain); err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", plain, err)
		}

		encryptedCount++
	}

	log.Info().Int("count", encryptedCount).Msg("Encryption complete")
	return nil
}

func (ec *EncryptCmd) decrypt(ctx context.Context, cmd *cli.Command) error {
	cfg, err := core.ReadConfigFile(ec.coreFlags.ConfigFilePath)
	if err != nil {
		return err
	}

	files, err := cfg.EncryptedFiles()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		log.Info().Msg("No files configured for decryption")
		return nil
	}

	vault, err := cfg.Vault()
	if err != nil {
		return err
	}

	decryptedCount := 0
	for _, file := range files {
		plain, sealed := core.VaultPaths(file)

		if !exists(sealed) {
			log.Debug().Str("file", sealed).Msg("Encrypted file doesn't exist, skipping")
			continue
		}

		if exists(plain) {
			log.Warn().Str("file", plain).Msg("Decrypted file already exists, skipping")
			continue
		}

		log.Info().Str("source", sealed).Str("target", plain).Msg("Decrypting file")
		if err := vault.Open(sealed); err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", sealed, err)
		}

		decryptedCount++
	}

	log.Info().Int("count", decryptedCount).Msg("Decryption complete")
	return nil
}

// checkEncrypted reports the state of every vault file and fails if any of
// them is present in plain text.
func checkEncrypted(p *printer.Printer, files []string) error {
	items := make([]printer.StatusListItem, 0, len(files))

	unencrypted := unencryptedFiles(files)
	for _, file := range files {
		plain, _ := core.VaultPaths(file)
		items = append(items, printer.StatusListItem{
			Ok:     !slices.Contains(unencrypted, plain),
			Status: plain,
		})
	}

	if len(items) > 0 {
		p.StatusList("Vault files", items)
	}

	if len(unencrypted) > 0 {
		return fmt.Errorf("%d vault file(s) are not encrypted, run 'ellipsis encrypt'", len(unencrypted))
	}

	return nil
}

// unencryptedFiles returns the plain paths of vault files that exist on disk.
func unencryptedFiles(files []string) []string {
	var out []string
	for _, file := range files {
		plain, _ := core.VaultPaths(file)
		if exists(plain) {
			out = append(out, plain)
		}
	}
	return out
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
