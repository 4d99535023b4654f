package main

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
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

// hashDirectories digests every regular file under dirPaths. File paths take
// part in the digest, so renames change it too.
func hashDirectories(dirPaths ...string) (string, error) {
	hash := sha256.New()
	for _, dirPath := range dirPaths {
		err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			fileHash, err := hashFile(path)
			if err != nil {
				return err
			}
			hash.Write([]byte(filepath.ToSlash(path)))
			hash.Write([]byte(fileHash))
			return nil
		})
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
