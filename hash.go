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

// hashDirectories hashes the paths and contents of all regular files under dirs.
// Test files are skipped so that only shipped code affects the result.
func hashDirectories(dirs ...string) (string, error) {
	hash := sha256.New()
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".go" || isTestFile(path) {
				return nil
			}
			fileHash, err := hashFile(path)
			if err != nil {
				return err
			}
			hash.Write([]byte(filepath.ToSlash(path)))
			hash.Write([]byte{0})
			hash.Write([]byte(fileHash))
			return nil
		})
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func isTestFile(path string) bool {
	matched, _ := filepath.Match("*_test.go", filepath.Base(path))
	return matched
}
