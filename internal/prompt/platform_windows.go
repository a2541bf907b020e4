//go:build windows

package prompt

// supportsIntegratedAuth is true on Windows, where the host account can
// authenticate through SSPI.
func supportsIntegratedAuth() bool {
	return true
}
