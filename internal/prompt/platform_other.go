//go:build !windows

package prompt

func supportsIntegratedAuth() bool {
	return false
}
