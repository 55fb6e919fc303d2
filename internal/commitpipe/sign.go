// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package commitpipe

import (
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// pemBlockType matches the header OpenSSH's `ssh-keygen -Y sign` and git's
// `gpg.format=ssh` use for detached commit signatures.
const pemBlockType = "SSH SIGNATURE"

// signSSH signs buffer with key, returning a PEM-armored signature blob
// with LF line endings (spec §4.J step 4: "sign it with SSH (SHA-256)
// producing a PEM blob (LF line endings)"), grounded on
// original_source/asyncgit/src/sync/commit.rs's ssh_key::PrivateKey::sign
// call, adapted to golang.org/x/crypto/ssh.
func signSSH(rawKey []byte, buffer []byte) (string, error) {
	signer, err := ssh.ParsePrivateKey(rawKey)
	if err != nil {
		return "", fmt.Errorf("commitpipe: parse signing key: %w", err)
	}

	algSigner, ok := signer.(ssh.AlgorithmSigner)
	if !ok {
		return "", fmt.Errorf("commitpipe: signing key does not support algorithm selection")
	}

	sig, err := algSigner.SignWithAlgorithm(nil, buffer, ssh.KeyAlgoRSASHA256)
	if err != nil {
		return "", fmt.Errorf("commitpipe: sign commit buffer: %w", err)
	}

	block := &pem.Block{
		Type:  pemBlockType,
		Bytes: ssh.Marshal(sig),
	}
	return string(pem.EncodeToMemory(block)), nil
}
