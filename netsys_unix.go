//go:build unix

package netsock

// POSIX systems need no pre-flight setup before the first socket call and no
// teardown at process exit; the subsystem contract exists for the platforms
// that do.
func platformNetInit() error {
	return nil
}
