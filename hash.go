package main

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

func hashFile(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// sourceHash hashes the Go files under dirs, plus go.mod. Paths are mixed
// in so a rename changes the hash. WalkDir visits in lexical order.
func sourceHash(dirs ...string) (string, error) {
	hash := sha256.New()
	add := func(path string) error {
		fileHash, err := hashFile(path)
		if err != nil {
			return err
		}
		hash.Write([]byte(filepath.ToSlash(path)))
		hash.Write([]byte(fileHash))
		return nil
	}
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".go" {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return "", err
		}
	}
	if _, err := os.Stat("go.mod"); err == nil {
		if err := add("go.mod"); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
