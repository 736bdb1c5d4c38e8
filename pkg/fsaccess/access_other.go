//go:build !unix

package fsaccess

import "os"

func canAccess(path string, write bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if write {
		return info.Mode().Perm()&0o200 != 0
	}
	return true
}
